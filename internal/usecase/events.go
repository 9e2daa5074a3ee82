package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"localmarket/internal/domain/entity"
	"localmarket/pkg/logger"
)

// publish is best effort: the write that produced the event has already
// committed, so a broker failure is logged and the request still succeeds.
func publish(ctx context.Context, publisher EventPublisher, eventType, subjectID, actorID string, data any) {
	event := entity.Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		SubjectID:  subjectID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.LogEventError(eventType, subjectID, err)
	}
}
