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

func newTestTrainerService(trainers *fakeTrainerRepo, rooms *fakeClassRoomRepo, pub *recordingPublisher) *trainerService {
	svc := NewTrainerService(trainers, rooms, testValidator, pub).(*trainerService)
	svc.now = fixedClock
	return svc
}

func validTrainer() *model.Trainer {
	return &model.Trainer{LastName: "Smith", FirstName: "John", Email: "john@x.com", Specialty: "Java"}
}

func TestTrainerService_Save(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), pub)

	saved, err := svc.Save(context.Background(), validTrainer())
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.Equal(t, fixedNow, saved.UpdatedAt)
	assert.Equal(t, []string{"trainer.created"}, pub.types())
}

func TestTrainerService_Save_Null(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.Save(context.Background(), nil)
	assert.Equal(t, apperror.CodeNullRequest, apperror.CodeOf(err))
}

func TestTrainerService_Save_DuplicateEmail(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})
	_, err := svc.Save(context.Background(), validTrainer())
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), validTrainer())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDuplicate))
	assert.Equal(t, apperror.CodeTrainerEmailExists, apperror.CodeOf(err))
}

func TestTrainerService_Save_ValidationAggregatesFields(t *testing.T) {
	trainers := newFakeTrainerRepo()
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.Save(context.Background(), &model.Trainer{FirstName: "J", LastName: "", Email: "bad", Specialty: "Java"})

	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeValidationFailed, ae.Code)
	assert.Len(t, ae.Fields, 3)
	assert.Empty(t, trainers.items)
}

func TestTrainerService_Save_UnknownClassRoom(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})
	trainer := validTrainer()
	trainer.ClassRoomID = int64Ptr(9)

	_, err := svc.Save(context.Background(), trainer)
	assert.Equal(t, apperror.CodeClassRoomNotFound, apperror.CodeOf(err))
}

func TestTrainerService_Save_PublishFailureDoesNotFail(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{err: errPublish})

	saved, err := svc.Save(context.Background(), validTrainer())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
}

func TestTrainerService_FindByID_NotFound(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.FindByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, "TRAINER_NOT_FOUND: Trainer not found with id: 999", err.Error())
}

func TestTrainerService_FindByID_InvalidID(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.FindByID(context.Background(), 0)
	assert.Equal(t, apperror.CodeInvalidID, apperror.CodeOf(err))
}

func TestTrainerService_Search_ShortKeywordNeverHitsStore(t *testing.T) {
	trainers := newFakeTrainerRepo()
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.Search(context.Background(), " J ", model.PageRequest{})
	assert.Equal(t, apperror.CodeInvalidSearch, apperror.CodeOf(err))
	assert.Nil(t, trainers.lastFilter)

	_, err = svc.Search(context.Background(), " Jo ", model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Jo", trainers.lastFilter.Keyword)
}

func TestTrainerService_FindByEmail_InvalidFormat(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.FindByEmail(context.Background(), "not-an-email", model.PageRequest{})
	assert.Equal(t, apperror.CodeInvalidEmail, apperror.CodeOf(err))
}

func TestTrainerService_FindByLastNameAndFirstName(t *testing.T) {
	trainers := newFakeTrainerRepo()
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.FindByLastNameAndFirstName(context.Background(), "Smith", " ", model.PageRequest{})
	assert.Equal(t, apperror.CodeInvalidSearch, apperror.CodeOf(err))

	_, err = svc.FindByLastNameAndFirstName(context.Background(), " Smith", "John ", model.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Smith", trainers.lastFilter.LastName)
	assert.Equal(t, "John", trainers.lastFilter.FirstName)
}

func TestTrainerService_FindByClassRoomID(t *testing.T) {
	rooms := newFakeClassRoomRepo(model.ClassRoom{ID: 3, Name: "Lab", RoomNumber: "L-3", MaxCapacity: 10})
	trainers := newFakeTrainerRepo(
		model.Trainer{ID: 1, Email: "a@x.com", ClassRoomID: int64Ptr(3)},
		model.Trainer{ID: 2, Email: "b@x.com"},
	)
	svc := newTestTrainerService(trainers, rooms, &recordingPublisher{})

	page, err := svc.FindByClassRoomID(context.Background(), 3, model.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.Content[0].ID)

	_, err = svc.FindByClassRoomID(context.Background(), 4, model.PageRequest{})
	assert.Equal(t, apperror.CodeClassRoomNotFound, apperror.CodeOf(err))
}

func TestTrainerService_FindAvailableTrainers(t *testing.T) {
	trainers := newFakeTrainerRepo(
		model.Trainer{ID: 1, Email: "idle@x.com", ActiveCourses: 0},
		model.Trainer{ID: 2, Email: "busy@x.com", ActiveCourses: 2},
	)
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), &recordingPublisher{})

	page, err := svc.FindAvailableTrainers(context.Background(), 0, model.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "idle@x.com", page.Content[0].Email)

	_, err = svc.FindAvailableTrainers(context.Background(), -1, model.PageRequest{})
	assert.Equal(t, apperror.CodeInvalidCapacity, apperror.CodeOf(err))
}

func TestTrainerService_FindAll_InvalidSort(t *testing.T) {
	trainers := newFakeTrainerRepo()
	trainers.listErr = errInvalidSortFromStore
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), &recordingPublisher{})

	_, err := svc.FindAll(context.Background(), model.PageRequest{Sort: "password"})
	assert.Equal(t, apperror.CodeInvalidSort, apperror.CodeOf(err))
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestTrainerService_Update(t *testing.T) {
	created := fixedNow.Add(-48 * time.Hour)
	trainers := newFakeTrainerRepo(model.Trainer{
		ID: 1, LastName: "Smith", FirstName: "John", Email: "john@x.com", Specialty: "Java",
		CreatedAt: created, UpdatedAt: created, ActiveCourses: 1,
	})
	pub := &recordingPublisher{}
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), pub)

	update := validTrainer()
	update.ID = 1
	update.Specialty = "Kotlin"

	updated, err := svc.Update(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	assert.Equal(t, 1, updated.ActiveCourses)
	assert.Equal(t, "Kotlin", trainers.items[1].Specialty)
	assert.Equal(t, []string{"trainer.updated"}, pub.types())
}

func TestTrainerService_Update_EmailTakenByAnother(t *testing.T) {
	trainers := newFakeTrainerRepo(
		model.Trainer{ID: 1, Email: "john@x.com"},
		model.Trainer{ID: 2, Email: "jane@x.com"},
	)
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), &recordingPublisher{})

	update := validTrainer()
	update.ID = 1
	update.Email = "jane@x.com"

	_, err := svc.Update(context.Background(), update)
	assert.Equal(t, apperror.CodeTrainerEmailExists, apperror.CodeOf(err))
}

func TestTrainerService_Update_NotFound(t *testing.T) {
	svc := newTestTrainerService(newFakeTrainerRepo(), newFakeClassRoomRepo(), &recordingPublisher{})
	update := validTrainer()
	update.ID = 42

	_, err := svc.Update(context.Background(), update)
	assert.Equal(t, apperror.CodeTrainerNotFound, apperror.CodeOf(err))
}

func TestTrainerService_Delete(t *testing.T) {
	trainers := newFakeTrainerRepo(
		model.Trainer{ID: 1, Email: "busy@x.com", ActiveCourses: 1},
		model.Trainer{ID: 2, Email: "idle@x.com"},
	)
	pub := &recordingPublisher{}
	svc := newTestTrainerService(trainers, newFakeClassRoomRepo(), pub)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInUse))
	assert.Equal(t, apperror.CodeTrainerMaxCourses, apperror.CodeOf(err))
	assert.Contains(t, trainers.items, int64(1))

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.NotContains(t, trainers.items, int64(2))
	assert.Equal(t, []string{"trainer.deleted"}, pub.types())

	err = svc.Delete(context.Background(), 2)
	assert.Equal(t, apperror.CodeTrainerNotFound, apperror.CodeOf(err))
}
