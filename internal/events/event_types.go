package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCarCreated   EventType = "car_created"
	EventCarUpdated   EventType = "car_updated"
	EventCarDeleted   EventType = "car_deleted"
	EventBrandCreated EventType = "brand_created"
	EventBrandDeleted EventType = "brand_deleted"
	EventUserLoggedIn EventType = "user_logged_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CarPayload describes the car an event refers to.
type CarPayload struct {
	CarID   int64  `json:"car_id"`
	BrandID int64  `json:"brand_id"`
	Brand   string `json:"brand,omitempty"`
}

// BrandPayload describes the brand an event refers to.
type BrandPayload struct {
	BrandID int64  `json:"brand_id"`
	Name    string `json:"name"`
}

// LoginPayload describes a completed login.
type LoginPayload struct {
	Username string `json:"username"`
	Reused   bool   `json:"reused"`
}
