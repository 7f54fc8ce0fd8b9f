package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"training-center/internal/apperror"
	"training-center/internal/events"
	"training-center/internal/model"
	"training-center/internal/repository"
	"training-center/internal/validation"
)

type TrainerService interface {
	Save(ctx context.Context, trainer *model.Trainer) (*model.Trainer, error)
	FindByID(ctx context.Context, id int64) (*model.Trainer, error)
	FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Trainer], error)
	Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.Trainer], error)
	FindByEmail(ctx context.Context, email string, page model.PageRequest) (*model.Page[model.Trainer], error)
	FindBySpecialty(ctx context.Context, specialty string, page model.PageRequest) (*model.Page[model.Trainer], error)
	FindByLastNameAndFirstName(ctx context.Context, lastName, firstName string, page model.PageRequest) (*model.Page[model.Trainer], error)
	FindByClassRoomID(ctx context.Context, classRoomID int64, page model.PageRequest) (*model.Page[model.Trainer], error)
	FindAvailableTrainers(ctx context.Context, maxCourses int, page model.PageRequest) (*model.Page[model.Trainer], error)
	Update(ctx context.Context, trainer *model.Trainer) (*model.Trainer, error)
	Delete(ctx context.Context, id int64) error
}

type trainerService struct {
	base
	trainers   repository.TrainerRepository
	classRooms repository.ClassRoomRepository
	validator  *validation.Validator
}

func NewTrainerService(
	trainers repository.TrainerRepository,
	classRooms repository.ClassRoomRepository,
	validator *validation.Validator,
	publisher events.EventPublisher,
) TrainerService {
	return &trainerService{
		base:       newBase(publisher),
		trainers:   trainers,
		classRooms: classRooms,
		validator:  validator,
	}
}

func (s *trainerService) Save(ctx context.Context, trainer *model.Trainer) (*model.Trainer, error) {
	if trainer == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "Trainer must not be null")
	}
	if err := s.check(ctx, trainer); err != nil {
		return nil, err
	}

	exists, err := s.trainers.EmailExists(ctx, trainer.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Duplicate(apperror.CodeTrainerEmailExists, "Trainer already exists with email: %s", trainer.Email)
	}

	now := s.now()
	trainer.ID = 0
	trainer.ActiveCourses = 0
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	id, err := s.trainers.Create(ctx, trainer)
	if err != nil {
		return nil, translateStoreError(err)
	}
	trainer.ID = id

	slog.InfoContext(ctx, "Trainer created", "trainer_id", id)
	s.publish(ctx, entityTrainer, events.ActionCreated, id)

	return trainer, nil
}

func (s *trainerService) FindByID(ctx context.Context, id int64) (*model.Trainer, error) {
	return loadTrainer(ctx, s.trainers, id)
}

func (s *trainerService) FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Trainer], error) {
	return s.list(ctx, repository.TrainerFilter{}, page)
}

func (s *trainerService) Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.Trainer], error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.TrainerFilter{Keyword: keyword}, page)
}

func (s *trainerService) FindByEmail(ctx context.Context, email string, page model.PageRequest) (*model.Page[model.Trainer], error) {
	email = strings.TrimSpace(email)
	if !validation.IsEmail(email) {
		return nil, apperror.Validation(apperror.CodeInvalidEmail, "Invalid email format: %s", email)
	}
	return s.list(ctx, repository.TrainerFilter{Email: email}, page)
}

func (s *trainerService) FindBySpecialty(ctx context.Context, specialty string, page model.PageRequest) (*model.Page[model.Trainer], error) {
	specialty, err := requireTerm("Specialty", specialty)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.TrainerFilter{Specialty: specialty}, page)
}

func (s *trainerService) FindByLastNameAndFirstName(ctx context.Context, lastName, firstName string, page model.PageRequest) (*model.Page[model.Trainer], error) {
	lastName, err := requireTerm("Last name", lastName)
	if err != nil {
		return nil, err
	}
	firstName, err = requireTerm("First name", firstName)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.TrainerFilter{LastName: lastName, FirstName: firstName}, page)
}

func (s *trainerService) FindByClassRoomID(ctx context.Context, classRoomID int64, page model.PageRequest) (*model.Page[model.Trainer], error) {
	if _, err := loadClassRoom(ctx, s.classRooms, classRoomID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.TrainerFilter{ClassRoomID: &classRoomID}, page)
}

func (s *trainerService) FindAvailableTrainers(ctx context.Context, maxCourses int, page model.PageRequest) (*model.Page[model.Trainer], error) {
	if maxCourses < 0 {
		return nil, apperror.Validation(apperror.CodeInvalidCapacity, "Max courses must not be negative, got: %d", maxCourses)
	}
	return s.list(ctx, repository.TrainerFilter{MaxActiveCourses: &maxCourses}, page)
}

func (s *trainerService) Update(ctx context.Context, trainer *model.Trainer) (*model.Trainer, error) {
	if trainer == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "Trainer must not be null")
	}
	existing, err := s.FindByID(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, trainer); err != nil {
		return nil, err
	}

	exists, err := s.trainers.EmailExists(ctx, trainer.Email, trainer.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Duplicate(apperror.CodeTrainerEmailExists, "Trainer already exists with email: %s", trainer.Email)
	}

	trainer.CreatedAt = existing.CreatedAt
	trainer.UpdatedAt = s.now()
	trainer.ActiveCourses = existing.ActiveCourses

	if err := s.trainers.Update(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, trainerNotFound(trainer.ID)
		}
		return nil, translateStoreError(err)
	}

	s.publish(ctx, entityTrainer, events.ActionUpdated, trainer.ID)
	return trainer, nil
}

func (s *trainerService) Delete(ctx context.Context, id int64) error {
	trainer, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if trainer.ActiveCourses > 0 {
		return apperror.InUse(apperror.CodeTrainerMaxCourses,
			"Cannot delete trainer with id %d: %d active course(s) assigned", id, trainer.ActiveCourses)
	}

	if err := s.trainers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return trainerNotFound(id)
		}
		return err
	}

	slog.InfoContext(ctx, "Trainer deleted", "trainer_id", id)
	s.publish(ctx, entityTrainer, events.ActionDeleted, id)
	return nil
}

// check normalizes and validates the trainer and resolves its classroom.
func (s *trainerService) check(ctx context.Context, trainer *model.Trainer) error {
	trainer.LastName = strings.TrimSpace(trainer.LastName)
	trainer.FirstName = strings.TrimSpace(trainer.FirstName)
	trainer.Email = strings.TrimSpace(trainer.Email)
	trainer.Specialty = strings.TrimSpace(trainer.Specialty)

	if err := s.validator.Struct(trainer); err != nil {
		return err
	}
	if trainer.ClassRoomID != nil {
		if _, err := loadClassRoom(ctx, s.classRooms, *trainer.ClassRoomID); err != nil {
			return err
		}
	}
	return nil
}

func (s *trainerService) list(ctx context.Context, filter repository.TrainerFilter, page model.PageRequest) (*model.Page[model.Trainer], error) {
	result, err := s.trainers.List(ctx, filter, page)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return result, nil
}

func trainerNotFound(id int64) error {
	return apperror.NotFound(apperror.CodeTrainerNotFound, "Trainer not found with id: %d", id)
}

func loadTrainer(ctx context.Context, trainers repository.TrainerRepository, id int64) (*model.Trainer, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	trainer, err := trainers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, trainerNotFound(id)
	}
	return trainer, nil
}
