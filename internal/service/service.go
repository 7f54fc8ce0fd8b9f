// Package service holds the domain rules for trainers, students, courses and
// classrooms: validation, reference resolution, uniqueness and delete guards.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"training-center/internal/apperror"
	"training-center/internal/events"
	"training-center/internal/repository"
)

const minKeywordLength = 2

const (
	entityTrainer   = "trainer"
	entityStudent   = "student"
	entityCourse    = "course"
	entityClassRoom = "classroom"
)

// base carries the collaborators every service shares.
type base struct {
	publisher events.EventPublisher
	now       func() time.Time
}

func newBase(publisher events.EventPublisher) base {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return base{publisher: publisher, now: time.Now}
}

// publish is best effort; a failed publish never fails the request.
func (b base) publish(ctx context.Context, entity string, action events.Action, id int64) {
	event := events.NewEntityEvent(entity, action, id, b.now())
	if err := b.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish entity event", "event_type", event.EventType, "entity_id", id, "error", err)
	}
}

func requireID(id int64) error {
	if id <= 0 {
		return apperror.Validation(apperror.CodeInvalidID, "Id must be a positive number, got: %d", id)
	}
	return nil
}

func normalizeKeyword(keyword string) (string, error) {
	trimmed := strings.TrimSpace(keyword)
	if len([]rune(trimmed)) < minKeywordLength {
		return "", apperror.Validation(apperror.CodeInvalidSearch,
			"Search keyword must be at least %d characters", minKeywordLength)
	}
	return trimmed, nil
}

func requireTerm(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperror.Validation(apperror.CodeInvalidSearch, "%s must not be blank", name)
	}
	return trimmed, nil
}

// translateStoreError maps repository failures onto domain errors. Constraint
// violations that slipped past the service checks end up here.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrInvalidSort) {
		return apperror.Validation(apperror.CodeInvalidSort, "%v", err).Wrap(err)
	}

	var ce *repository.ConstraintError
	if !errors.As(err, &ce) {
		return err
	}
	switch ce.Constraint {
	case repository.ConstraintTrainerEmail:
		return apperror.Duplicate(apperror.CodeTrainerEmailExists, "Trainer email already exists").Wrap(err)
	case repository.ConstraintStudentEmail:
		return apperror.Duplicate(apperror.CodeStudentEmailExists, "Student email already exists").Wrap(err)
	case repository.ConstraintRoomNumber:
		return apperror.Duplicate(apperror.CodeClassRoomExists, "ClassRoom room number already exists").Wrap(err)
	case repository.ConstraintTrainerClassRoom, repository.ConstraintStudentClassRoom:
		return apperror.NotFound(apperror.CodeClassRoomNotFound, "Referenced classroom does not exist").Wrap(err)
	case repository.ConstraintStudentCourse:
		return apperror.NotFound(apperror.CodeCourseNotFound, "Referenced course does not exist").Wrap(err)
	case repository.ConstraintCourseTrainer:
		return apperror.NotFound(apperror.CodeTrainerNotFound, "Referenced trainer does not exist").Wrap(err)
	}
	return err
}
