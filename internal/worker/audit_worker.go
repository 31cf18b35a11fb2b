package worker

import (
	"github.com/motorline/car-catalog/internal/service"
)

// StartAuditWorker wires the audit log into the event stream.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
