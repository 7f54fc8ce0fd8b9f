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

type ClassRoomService interface {
	Save(ctx context.Context, room *model.ClassRoom) (*model.ClassRoom, error)
	FindByID(ctx context.Context, id int64) (*model.ClassRoom, error)
	FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.ClassRoom], error)
	Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.ClassRoom], error)
	FindAvailableRooms(ctx context.Context, capacity int, page model.PageRequest) (*model.Page[model.ClassRoom], error)
	FindEmptyRooms(ctx context.Context, page model.PageRequest) (*model.Page[model.ClassRoom], error)
	FindRoomsWithoutTrainers(ctx context.Context, page model.PageRequest) (*model.Page[model.ClassRoom], error)
	Update(ctx context.Context, room *model.ClassRoom) (*model.ClassRoom, error)
	Delete(ctx context.Context, id int64) error
}

type classRoomService struct {
	base
	classRooms repository.ClassRoomRepository
	validator  *validation.Validator
}

func NewClassRoomService(
	classRooms repository.ClassRoomRepository,
	validator *validation.Validator,
	publisher events.EventPublisher,
) ClassRoomService {
	return &classRoomService{
		base:       newBase(publisher),
		classRooms: classRooms,
		validator:  validator,
	}
}

func (s *classRoomService) Save(ctx context.Context, room *model.ClassRoom) (*model.ClassRoom, error) {
	if room == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "ClassRoom must not be null")
	}
	if err := s.check(room); err != nil {
		return nil, err
	}
	if err := s.ensureRoomNumberFree(ctx, room.RoomNumber, 0); err != nil {
		return nil, err
	}

	now := s.now()
	room.ID = 0
	room.CurrentCapacity = 0
	room.TrainerCount = 0
	room.CreatedAt = now
	room.UpdatedAt = now

	id, err := s.classRooms.Create(ctx, room)
	if err != nil {
		return nil, translateStoreError(err)
	}
	room.ID = id

	slog.InfoContext(ctx, "ClassRoom created", "classroom_id", id, "room_number", room.RoomNumber)
	s.publish(ctx, entityClassRoom, events.ActionCreated, id)

	return room, nil
}

func (s *classRoomService) FindByID(ctx context.Context, id int64) (*model.ClassRoom, error) {
	return loadClassRoom(ctx, s.classRooms, id)
}

func (s *classRoomService) FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	return s.list(ctx, repository.ClassRoomFilter{}, page)
}

func (s *classRoomService) Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ClassRoomFilter{Keyword: keyword}, page)
}

func (s *classRoomService) FindAvailableRooms(ctx context.Context, capacity int, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	if capacity < 0 {
		return nil, apperror.Validation(apperror.CodeInvalidCapacity, "Capacity must not be negative, got: %d", capacity)
	}
	return s.list(ctx, repository.ClassRoomFilter{MinRemaining: &capacity}, page)
}

func (s *classRoomService) FindEmptyRooms(ctx context.Context, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	return s.list(ctx, repository.ClassRoomFilter{Empty: true}, page)
}

func (s *classRoomService) FindRoomsWithoutTrainers(ctx context.Context, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	return s.list(ctx, repository.ClassRoomFilter{WithoutTrainers: true}, page)
}

func (s *classRoomService) Update(ctx context.Context, room *model.ClassRoom) (*model.ClassRoom, error) {
	if room == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "ClassRoom must not be null")
	}
	existing, err := loadClassRoom(ctx, s.classRooms, room.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(room); err != nil {
		return nil, err
	}

	// Only a changed room number can collide with another room.
	if room.RoomNumber != existing.RoomNumber {
		if err := s.ensureRoomNumberFree(ctx, room.RoomNumber, room.ID); err != nil {
			return nil, err
		}
	}
	if room.MaxCapacity < existing.CurrentCapacity {
		return nil, apperror.Validation(apperror.CodeInvalidCapacity,
			"Max capacity %d is below the current occupancy %d of classroom %d",
			room.MaxCapacity, existing.CurrentCapacity, room.ID)
	}

	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = s.now()
	room.CurrentCapacity = existing.CurrentCapacity
	room.TrainerCount = existing.TrainerCount

	if err := s.classRooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, classRoomNotFound(room.ID)
		}
		return nil, translateStoreError(err)
	}

	s.publish(ctx, entityClassRoom, events.ActionUpdated, room.ID)
	return room, nil
}

func (s *classRoomService) Delete(ctx context.Context, id int64) error {
	room, err := loadClassRoom(ctx, s.classRooms, id)
	if err != nil {
		return err
	}
	if room.CurrentCapacity > 0 {
		return apperror.InUse(apperror.CodeClassRoomNotEmpty,
			"Cannot delete classroom %d: %d student(s) still assigned", id, room.CurrentCapacity)
	}
	if room.TrainerCount > 0 {
		return apperror.InUse(apperror.CodeClassRoomHasTrainers,
			"Cannot delete classroom %d: %d trainer(s) still assigned", id, room.TrainerCount)
	}

	if err := s.classRooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return classRoomNotFound(id)
		}
		return err
	}

	slog.InfoContext(ctx, "ClassRoom deleted", "classroom_id", id)
	s.publish(ctx, entityClassRoom, events.ActionDeleted, id)
	return nil
}

func (s *classRoomService) check(room *model.ClassRoom) error {
	room.Name = strings.TrimSpace(room.Name)
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	return s.validator.Struct(room)
}

func (s *classRoomService) ensureRoomNumberFree(ctx context.Context, roomNumber string, excludeID int64) error {
	exists, err := s.classRooms.RoomNumberExists(ctx, roomNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Duplicate(apperror.CodeClassRoomExists, "ClassRoom already exists with room number: %s", roomNumber)
	}
	return nil
}

func (s *classRoomService) list(ctx context.Context, filter repository.ClassRoomFilter, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	result, err := s.classRooms.List(ctx, filter, page)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return result, nil
}

func classRoomNotFound(id int64) error {
	return apperror.NotFound(apperror.CodeClassRoomNotFound, "ClassRoom not found with id: %d", id)
}

func loadClassRoom(ctx context.Context, classRooms repository.ClassRoomRepository, id int64) (*model.ClassRoom, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	room, err := classRooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, classRoomNotFound(id)
	}
	return room, nil
}
