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

type StudentService interface {
	Save(ctx context.Context, student *model.Student) (*model.Student, error)
	FindByID(ctx context.Context, id int64) (*model.Student, error)
	FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Student], error)
	Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.Student], error)
	FindByLevel(ctx context.Context, level string, page model.PageRequest) (*model.Page[model.Student], error)
	FindByClassRoomID(ctx context.Context, classRoomID int64, page model.PageRequest) (*model.Page[model.Student], error)
	FindByCourseID(ctx context.Context, courseID int64, page model.PageRequest) (*model.Page[model.Student], error)
	Update(ctx context.Context, student *model.Student) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	base
	students   repository.StudentRepository
	courses    repository.CourseRepository
	classRooms repository.ClassRoomRepository
	validator  *validation.Validator
}

func NewStudentService(
	students repository.StudentRepository,
	courses repository.CourseRepository,
	classRooms repository.ClassRoomRepository,
	validator *validation.Validator,
	publisher events.EventPublisher,
) StudentService {
	return &studentService{
		base:       newBase(publisher),
		students:   students,
		courses:    courses,
		classRooms: classRooms,
		validator:  validator,
	}
}

func (s *studentService) Save(ctx context.Context, student *model.Student) (*model.Student, error) {
	if student == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "Student must not be null")
	}
	if err := s.check(ctx, student, nil); err != nil {
		return nil, err
	}

	exists, err := s.students.EmailExists(ctx, student.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Duplicate(apperror.CodeStudentEmailExists, "Student already exists with email: %s", student.Email)
	}

	now := s.now()
	student.ID = 0
	student.RegistrationDate = now
	student.UpdatedAt = now

	id, err := s.students.Create(ctx, student)
	if err != nil {
		return nil, translateStoreError(err)
	}
	student.ID = id

	slog.InfoContext(ctx, "Student registered", "student_id", id)
	s.publish(ctx, entityStudent, events.ActionCreated, id)

	return student, nil
}

func (s *studentService) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, studentNotFound(id)
	}
	return student, nil
}

func (s *studentService) FindAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Student], error) {
	return s.list(ctx, repository.StudentFilter{}, page)
}

func (s *studentService) Search(ctx context.Context, keyword string, page model.PageRequest) (*model.Page[model.Student], error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.StudentFilter{Keyword: keyword}, page)
}

func (s *studentService) FindByLevel(ctx context.Context, level string, page model.PageRequest) (*model.Page[model.Student], error) {
	level, err := requireTerm("Level", level)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.StudentFilter{Level: level}, page)
}

func (s *studentService) FindByClassRoomID(ctx context.Context, classRoomID int64, page model.PageRequest) (*model.Page[model.Student], error) {
	if _, err := loadClassRoom(ctx, s.classRooms, classRoomID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.StudentFilter{ClassRoomID: &classRoomID}, page)
}

func (s *studentService) FindByCourseID(ctx context.Context, courseID int64, page model.PageRequest) (*model.Page[model.Student], error) {
	if _, err := loadCourse(ctx, s.courses, courseID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.StudentFilter{CourseID: &courseID}, page)
}

func (s *studentService) Update(ctx context.Context, student *model.Student) (*model.Student, error) {
	if student == nil {
		return nil, apperror.Validation(apperror.CodeNullRequest, "Student must not be null")
	}
	existing, err := s.FindByID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, student, existing); err != nil {
		return nil, err
	}

	exists, err := s.students.EmailExists(ctx, student.Email, student.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Duplicate(apperror.CodeStudentEmailExists, "Student already exists with email: %s", student.Email)
	}

	student.RegistrationDate = existing.RegistrationDate
	student.UpdatedAt = s.now()

	if err := s.students.Update(ctx, student); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, studentNotFound(student.ID)
		}
		return nil, translateStoreError(err)
	}

	s.publish(ctx, entityStudent, events.ActionUpdated, student.ID)
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return studentNotFound(id)
		}
		return err
	}

	slog.InfoContext(ctx, "Student deleted", "student_id", id)
	s.publish(ctx, entityStudent, events.ActionDeleted, id)
	return nil
}

// check normalizes and validates the student and resolves its course and
// classroom. A seat the student already holds (per previous) is not counted
// against capacity.
func (s *studentService) check(ctx context.Context, student, previous *model.Student) error {
	student.LastName = strings.TrimSpace(student.LastName)
	student.FirstName = strings.TrimSpace(student.FirstName)
	student.Email = strings.TrimSpace(student.Email)
	student.Level = strings.TrimSpace(student.Level)

	if err := s.validator.Struct(student); err != nil {
		return err
	}

	if student.CourseID != nil {
		course, err := loadCourse(ctx, s.courses, *student.CourseID)
		if err != nil {
			return err
		}
		alreadyEnrolled := previous != nil && sameID(previous.CourseID, student.CourseID)
		if !alreadyEnrolled && course.EnrolledCount >= course.MaxCapacity {
			return apperror.Validation(apperror.CodeCourseFull,
				"Course %d is full (%d/%d)", course.ID, course.EnrolledCount, course.MaxCapacity)
		}
	}

	if student.ClassRoomID != nil {
		room, err := loadClassRoom(ctx, s.classRooms, *student.ClassRoomID)
		if err != nil {
			return err
		}
		alreadySeated := previous != nil && sameID(previous.ClassRoomID, student.ClassRoomID)
		if !alreadySeated && room.CurrentCapacity >= room.MaxCapacity {
			return apperror.Validation(apperror.CodeClassRoomFull,
				"ClassRoom %d is full (%d/%d)", room.ID, room.CurrentCapacity, room.MaxCapacity)
		}
	}
	return nil
}

func (s *studentService) list(ctx context.Context, filter repository.StudentFilter, page model.PageRequest) (*model.Page[model.Student], error) {
	result, err := s.students.List(ctx, filter, page)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return result, nil
}

func studentNotFound(id int64) error {
	return apperror.NotFound(apperror.CodeStudentNotFound, "Student not found with id: %d", id)
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
