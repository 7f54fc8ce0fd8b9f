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

type CourseService interface {
	Save(ctx context.Context, course *model.Course) (*model.Course, error)
	FindByID(ctx context.Context, id int64) (*model.Course, error)
	FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Course], error)
	Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.Course], error)
	FindByDateRange(ctx context.Context, start, end model.Date, page model.PageRequest) (*model.Page[model.Course], error)
	FindAvailableCourses(ctx context.Context, page model.PageRequest) (*model.Page[model.Course], error)
	FindUpcomingCourses(ctx context.Context, page model.PageRequest) (*model.Page[model.Course], error)
	FindByTrainerID(ctx context.Context, trainerID int64, page model.PageRequest) (*model.Page[model.Course], error)
	Update(ctx context.Context, course *model.Course) (*model.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	base
	courses   repository.CourseRepository
	trainers  repository.TrainerRepository
	validator *validation.Validator
}

func NewCourseService(
	courses repository.CourseRepository,
	trainers repository.TrainerRepository,
	validator *validation.Validator,
	publisher events.EventPublisher,
) CourseService {
	return &courseService{
		base:      newBase(publisher),
		courses:   courses,
		trainers:  trainers,
		validator: validator,
	}
}

func (s *courseService) Save(ctx context.Context, course *model.Course) (*model.Course, error) {
	if course == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "Course must not be null")
	}
	if course.Status == "" {
		course.Status = model.CourseStatusPlanned
	}
	if err := s.check(ctx, course); err != nil {
		return nil, err
	}

	now := s.now()
	course.ID = 0
	course.EnrolledCount = 0
	course.CreatedAt = now
	course.UpdatedAt = now

	id, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, translateStoreError(err)
	}
	course.ID = id

	slog.InfoContext(ctx, "Course created", "course_id", id, "status", course.Status)
	s.publish(ctx, entityCourse, events.ActionCreated, id)

	return course, nil
}

func (s *courseService) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	return loadCourse(ctx, s.courses, id)
}

func (s *courseService) FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Course], error) {
	return s.list(ctx, repository.CourseFilter{}, page)
}

func (s *courseService) Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.Course], error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.CourseFilter{Keyword: keyword}, page)
}

// FindByDateRange returns courses overlapping [start, end], both inclusive.
func (s *courseService) FindByDateRange(ctx context.Context, start, end model.Date, page model.PageRequest) (*model.Page[model.Course], error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.Validation(apperror.CodeInvalidDate, "Start and end dates are required")
	}
	if start.After(end.Time) {
		return nil, apperror.Validation(apperror.CodeInvalidDateRange,
			"Start date %s must not be after end date %s", start, end)
	}
	return s.list(ctx, repository.CourseFilter{OverlapStart: &start, OverlapEnd: &end}, page)
}

func (s *courseService) FindAvailableCourses(ctx context.Context, page model.PageRequest) (*model.Page[model.Course], error) {
	return s.list(ctx, repository.CourseFilter{OpenSeats: true}, page)
}

func (s *courseService) FindUpcomingCourses(ctx context.Context, page model.PageRequest) (*model.Page[model.Course], error) {
	today := model.DateOf(s.now())
	return s.list(ctx, repository.CourseFilter{StartsAfter: &today}, page)
}

func (s *courseService) FindByTrainerID(ctx context.Context, trainerID int64, page model.PageRequest) (*model.Page[model.Course], error) {
	if _, err := loadTrainer(ctx, s.trainers, trainerID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.CourseFilter{TrainerID: &trainerID}, page)
}

func (s *courseService) Update(ctx context.Context, course *model.Course) (*model.Course, error) {
	if course == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "Course must not be null")
	}
	existing, err := loadCourse(ctx, s.courses, course.ID)
	if err != nil {
		return nil, err
	}
	if course.Status == "" {
		course.Status = existing.Status
	}
	if err := s.check(ctx, course); err != nil {
		return nil, err
	}
	if course.MaxCapacity < existing.EnrolledCount {
		return nil, apperror.Validation(apperror.CodeInvalidCapacity,
			"Max capacity %d is below the %d student(s) enrolled in course %d",
			course.MaxCapacity, existing.EnrolledCount, course.ID)
	}

	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = s.now()
	course.EnrolledCount = existing.EnrolledCount

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, courseNotFound(course.ID)
		}
		return nil, translateStoreError(err)
	}

	s.publish(ctx, entityCourse, events.ActionUpdated, course.ID)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id int64) error {
	course, err := loadCourse(ctx, s.courses, id)
	if err != nil {
		return err
	}
	if course.EnrolledCount > 0 {
		return apperror.InUse(apperror.CodeCourseHasStudents,
			"Cannot delete course %d: %d student(s) enrolled", id, course.EnrolledCount)
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return courseNotFound(id)
		}
		return err
	}

	slog.InfoContext(ctx, "Course deleted", "course_id", id)
	s.publish(ctx, entityCourse, events.ActionDeleted, id)
	return nil
}

// check normalizes and validates the course, including the cross-field
// rules, and resolves its trainer.
func (s *courseService) check(ctx context.Context, course *model.Course) error {
	course.Title = strings.TrimSpace(course.Title)
	course.Level = strings.TrimSpace(course.Level)

	fields := s.validator.Fields(course)
	if course.StartDate.IsZero() {
		fields = append(fields, apperror.FieldError{Field: "startDate", Message: "startDate is required"})
	}
	if course.EndDate.IsZero() {
		fields = append(fields, apperror.FieldError{Field: "endDate", Message: "endDate is required"})
	}
	if len(fields) > 0 {
		return apperror.InvalidFields(fields)
	}

	if course.StartDate.After(course.EndDate.Time) {
		return apperror.Validation(apperror.CodeInvalidDateRange,
			"Start date %s must not be after end date %s", course.StartDate, course.EndDate)
	}
	if course.MinCapacity > course.MaxCapacity {
		return apperror.Validation(apperror.CodeInvalidCapacity,
			"Min capacity %d must not exceed max capacity %d", course.MinCapacity, course.MaxCapacity)
	}

	if course.TrainerID != nil {
		if _, err := loadTrainer(ctx, s.trainers, *course.TrainerID); err != nil {
			return err
		}
	}
	return nil
}

func (s *courseService) list(ctx context.Context, filter repository.CourseFilter, page model.PageRequest) (*model.Page[model.Course], error) {
	result, err := s.courses.List(ctx, filter, page)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return result, nil
}

func courseNotFound(id int64) error {
	return apperror.NotFound(apperror.CodeCourseNotFound, "Course not found with id: %d", id)
}

func loadCourse(ctx context.Context, courses repository.CourseRepository, id int64) (*model.Course, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	course, err := courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, courseNotFound(id)
	}
	return course, nil
}
