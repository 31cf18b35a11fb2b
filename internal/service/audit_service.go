package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/motorline/car-catalog/internal/events"
	"github.com/motorline/car-catalog/internal/observability"
)

// AuditService records catalog and authentication events in the
// structured log so every mutation leaves a trail.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService builds the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger, metrics: metrics}
}

// RegisterHandlers subscribes the audit log to every event type.
func (s *AuditService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventCarCreated,
		events.EventCarUpdated,
		events.EventCarDeleted,
		events.EventBrandCreated,
		events.EventBrandDeleted,
		events.EventUserLoggedIn,
	} {
		s.dispatcher.Subscribe(eventType, s.record)
	}
}

func (s *AuditService) record(_ context.Context, event events.Event) error {
	s.logger.Info("audit event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("actor", event.Actor),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	if s.metrics != nil {
		s.metrics.IncEvent(string(event.Type))
	}
	return nil
}
