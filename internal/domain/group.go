package domain

// Group is an organizational membership carried in tokens for
// downstream consumers; it grants no authorities by itself.
type Group struct {
	ID   int64
	Name string
}
