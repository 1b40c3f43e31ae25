package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"messenger-service/internal/mocks"
)

func TestAuditEmitterPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, zap.NewNop().Sugar(), "audit.messenger", "messenger-service", "test")

	userID := 7
	publisher.On("Publish", mock.Anything, "audit.messenger", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(AuditEnvelope)
		if !ok {
			return false
		}
		return envelope.EventType == "audit_log" &&
			envelope.Service == "messenger-service" &&
			envelope.Environment == "test" &&
			envelope.RequestID == "req-1" &&
			envelope.UserID != nil && *envelope.UserID == 7 &&
			envelope.Payload.Level == "INFO" &&
			envelope.Payload.Text == "user authenticated via phone"
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "INFO", "user authenticated via phone", "req-1", "10.0.0.1", &userID)
	publisher.AssertExpectations(t)
}

func TestAuditEmitterNilSafe(t *testing.T) {
	var emitter *AuditEmitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "INFO", "noop", "req", "", nil)
	})
}
