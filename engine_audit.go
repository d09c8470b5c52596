package passy

import "context"

// emitAudit builds the event lazily so disabled auditing costs nothing
// beyond the nil check.
func (e *Engine) emitAudit(ctx context.Context, eventType string, metadataBuilder func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	e.audit.Emit(ctx, AuditEvent{
		Timestamp: e.now().UTC(),
		EventType: eventType,
		RequestID: RequestIDFromContext(ctx),
		ClientID:  clientIDFromContext(ctx),
		Success:   true,
		Metadata:  metadata,
	})
}
