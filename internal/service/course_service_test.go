package service

import (
	"context"
	"testing"
	"time"

	"training-center/internal/apperror"
	"training-center/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourseService(courses *fakeCourseRepo, trainers *fakeTrainerRepo, pub *recordingPublisher) *courseService {
	svc := NewCourseService(courses, trainers, testValidator, pub).(*courseService)
	svc.now = fixedClock
	return svc
}

func validCourse() *model.Course {
	return &model.Course{
		Title:       "Go Fundamentals",
		Level:       "Beginner",
		StartDate:   model.NewDate(2025, time.April, 1),
		EndDate:     model.NewDate(2025, time.April, 30),
		MinCapacity: 2,
		MaxCapacity: 20,
	}
}

func TestCourseService_Save_DefaultsToPlanned(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestCourseService(newFakeCourseRepo(), newFakeTrainerRepo(), pub)

	saved, err := svc.Save(context.Background(), validCourse())
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusPlanned, saved.Status)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, []string{"course.created"}, pub.types())
}

func TestCourseService_Save_KeepsExplicitStatus(t *testing.T) {
	svc := newTestCourseService(newFakeCourseRepo(), newFakeTrainerRepo(), &recordingPublisher{})
	course := validCourse()
	course.Status = model.CourseStatusCancelled

	saved, err := svc.Save(context.Background(), course)
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusCancelled, saved.Status)
}

func TestCourseService_Save_InvalidDateRange(t *testing.T) {
	courses := newFakeCourseRepo()
	svc := newTestCourseService(courses, newFakeTrainerRepo(), &recordingPublisher{})
	course := validCourse()
	course.StartDate, course.EndDate = course.EndDate, course.StartDate

	_, err := svc.Save(context.Background(), course)
	assert.Equal(t, apperror.CodeInvalidDateRange, apperror.CodeOf(err))
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, courses.items)
}

func TestCourseService_Save_SameDayIsValid(t *testing.T) {
	svc := newTestCourseService(newFakeCourseRepo(), newFakeTrainerRepo(), &recordingPublisher{})
	course := validCourse()
	course.EndDate = course.StartDate

	_, err := svc.Save(context.Background(), course)
	require.NoError(t, err)
}

func TestCourseService_Save_MinAboveMax(t *testing.T) {
	svc := newTestCourseService(newFakeCourseRepo(), newFakeTrainerRepo(), &recordingPublisher{})
	course := validCourse()
	course.MinCapacity = 25

	_, err := svc.Save(context.Background(), course)
	assert.Equal(t, apperror.CodeInvalidCapacity, apperror.CodeOf(err))
}

func TestCourseService_Save_MissingDates(t *testing.T) {
	svc := newTestCourseService(newFakeCourseRepo(), newFakeTrainerRepo(), &recordingPublisher{})
	course := validCourse()
	course.StartDate = model.Date{}
	course.EndDate = model.Date{}

	_, err := svc.Save(context.Background(), course)
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeValidationFailed, ae.Code)
	assert.ElementsMatch(t, []apperror.FieldError{
		{Field: "startDate", Message: "startDate is required"},
		{Field: "endDate", Message: "endDate is required"},
	}, ae.Fields)
}

func TestCourseService_Save_UnknownTrainer(t *testing.T) {
	svc := newTestCourseService(newFakeCourseRepo(), newFakeTrainerRepo(), &recordingPublisher{})
	course := validCourse()
	course.TrainerID = int64Ptr(99)

	_, err := svc.Save(context.Background(), course)
	assert.Equal(t, apperror.CodeTrainerNotFound, apperror.CodeOf(err))
}

func TestCourseService_Update(t *testing.T) {
	created := fixedNow.Add(-24 * time.Hour)
	existing := *validCourse()
	existing.ID = 1
	existing.Status = model.CourseStatusActive
	existing.EnrolledCount = 8
	existing.CreatedAt = created
	courses := newFakeCourseRepo(existing)
	svc := newTestCourseService(courses, newFakeTrainerRepo(), &recordingPublisher{})

	update := validCourse()
	update.ID = 1
	update.MaxCapacity = 7
	_, err := svc.Update(context.Background(), update)
	assert.Equal(t, apperror.CodeInvalidCapacity, apperror.CodeOf(err))

	update = validCourse()
	update.ID = 1
	update.MaxCapacity = 8
	updated, err := svc.Update(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusActive, updated.Status)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	assert.Equal(t, 8, updated.EnrolledCount)
}

func TestCourseService_Delete(t *testing.T) {
	enrolled := *validCourse()
	enrolled.ID = 1
	enrolled.EnrolledCount = 1
	empty := *validCourse()
	empty.ID = 2
	courses := newFakeCourseRepo(enrolled, empty)
	svc := newTestCourseService(courses, newFakeTrainerRepo(), &recordingPublisher{})

	err := svc.Delete(context.Background(), 1)
	assert.True(t, apperror.IsKind(err, apperror.KindInUse))
	assert.Equal(t, apperror.CodeCourseHasStudents, apperror.CodeOf(err))

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.Len(t, courses.items, 1)

	err = svc.Delete(context.Background(), 3)
	assert.Equal(t, apperror.CodeCourseNotFound, apperror.CodeOf(err))
}

func TestCourseService_FindByDateRange(t *testing.T) {
	courses := newFakeCourseRepo()
	svc := newTestCourseService(courses, newFakeTrainerRepo(), &recordingPublisher{})
	ctx := context.Background()
	start := model.NewDate(2025, time.March, 1)
	end := model.NewDate(2025, time.March, 31)

	_, err := svc.FindByDateRange(ctx, end, start, model.PageRequest{})
	assert.Equal(t, apperror.CodeInvalidDateRange, apperror.CodeOf(err))

	_, err = svc.FindByDateRange(ctx, model.Date{}, end, model.PageRequest{})
	assert.Equal(t, apperror.CodeInvalidDate, apperror.CodeOf(err))

	_, err = svc.FindByDateRange(ctx, start, end, model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, start, *courses.lastFilter.OverlapStart)
	assert.Equal(t, end, *courses.lastFilter.OverlapEnd)
}

func TestCourseService_FindUpcomingCourses_StartsAfterToday(t *testing.T) {
	courses := newFakeCourseRepo()
	svc := newTestCourseService(courses, newFakeTrainerRepo(), &recordingPublisher{})

	_, err := svc.FindUpcomingCourses(context.Background(), model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", courses.lastFilter.StartsAfter.String())
}

func TestCourseService_FindAvailableCourses(t *testing.T) {
	courses := newFakeCourseRepo()
	svc := newTestCourseService(courses, newFakeTrainerRepo(), &recordingPublisher{})

	page, err := svc.FindAvailableCourses(context.Background(), model.PageRequest{Size: 500})
	require.NoError(t, err)
	assert.True(t, courses.lastFilter.OpenSeats)
	assert.Equal(t, model.MaxPageSize, page.Size)
}

func TestCourseService_FindByTrainerID(t *testing.T) {
	courses := newFakeCourseRepo()
	trainers := newFakeTrainerRepo(model.Trainer{ID: 4, Email: "t@x.com"})
	svc := newTestCourseService(courses, trainers, &recordingPublisher{})

	_, err := svc.FindByTrainerID(context.Background(), 5, model.PageRequest{})
	assert.Equal(t, apperror.CodeTrainerNotFound, apperror.CodeOf(err))

	_, err = svc.FindByTrainerID(context.Background(), 4, model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), *courses.lastFilter.TrainerID)
}
