package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"training-center/internal/events"
	"training-center/internal/model"
	"training-center/internal/repository"
	"training-center/internal/validation"
)

// --- in-memory repositories; derived counters are whatever the test stores ---

type fakeTrainerRepo struct {
	mu         sync.Mutex
	items      map[int64]model.Trainer
	nextID     int64
	lastFilter *repository.TrainerFilter
	listErr    error
}

func newFakeTrainerRepo(trainers ...model.Trainer) *fakeTrainerRepo {
	r := &fakeTrainerRepo{items: map[int64]model.Trainer{}}
	for _, t := range trainers {
		r.items[t.ID] = t
		if t.ID > r.nextID {
			r.nextID = t.ID
		}
	}
	return r
}

func (r *fakeTrainerRepo) Create(_ context.Context, trainer *model.Trainer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *trainer
	stored.ID = r.nextID
	r.items[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeTrainerRepo) FindByID(_ context.Context, id int64) (*model.Trainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTrainerRepo) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.items {
		if t.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTrainerRepo) Update(_ context.Context, trainer *model.Trainer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[trainer.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[trainer.ID] = *trainer
	return nil
}

func (r *fakeTrainerRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTrainerRepo) List(_ context.Context, filter repository.TrainerFilter, page model.PageRequest) (*model.Page[model.Trainer], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = &filter
	if r.listErr != nil {
		return nil, r.listErr
	}
	var content []model.Trainer
	for _, t := range r.items {
		if filter.MaxActiveCourses != nil && t.ActiveCourses > *filter.MaxActiveCourses {
			continue
		}
		if filter.ClassRoomID != nil && !sameID(t.ClassRoomID, filter.ClassRoomID) {
			continue
		}
		content = append(content, t)
	}
	sort.Slice(content, func(i, j int) bool { return content[i].ID < content[j].ID })
	page = page.Normalize()
	return model.NewPage(content, page, len(content)), nil
}

type fakeStudentRepo struct {
	mu         sync.Mutex
	items      map[int64]model.Student
	nextID     int64
	lastFilter *repository.StudentFilter
}

func newFakeStudentRepo(students ...model.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{items: map[int64]model.Student{}}
	for _, s := range students {
		r.items[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeStudentRepo) Create(_ context.Context, student *model.Student) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *student
	stored.ID = r.nextID
	r.items[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeStudentRepo) FindByID(_ context.Context, id int64) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeStudentRepo) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.items {
		if s.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[student.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[student.ID] = *student
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeStudentRepo) List(_ context.Context, filter repository.StudentFilter, page model.PageRequest) (*model.Page[model.Student], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = &filter
	page = page.Normalize()
	return model.NewPage[model.Student](nil, page, 0), nil
}

type fakeCourseRepo struct {
	mu         sync.Mutex
	items      map[int64]model.Course
	nextID     int64
	lastFilter *repository.CourseFilter
}

func newFakeCourseRepo(courses ...model.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{items: map[int64]model.Course{}}
	for _, c := range courses {
		r.items[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCourseRepo) Create(_ context.Context, course *model.Course) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *course
	stored.ID = r.nextID
	r.items[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id int64) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[course.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[course.ID] = *course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCourseRepo) List(_ context.Context, filter repository.CourseFilter, page model.PageRequest) (*model.Page[model.Course], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = &filter
	page = page.Normalize()
	return model.NewPage[model.Course](nil, page, 0), nil
}

type fakeClassRoomRepo struct {
	mu               sync.Mutex
	items            map[int64]model.ClassRoom
	nextID           int64
	lastFilter       *repository.ClassRoomFilter
	roomNumberChecks int
	createErr        error
}

func newFakeClassRoomRepo(rooms ...model.ClassRoom) *fakeClassRoomRepo {
	r := &fakeClassRoomRepo{items: map[int64]model.ClassRoom{}}
	for _, c := range rooms {
		r.items[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeClassRoomRepo) Create(_ context.Context, room *model.ClassRoom) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.nextID++
	stored := *room
	stored.ID = r.nextID
	r.items[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeClassRoomRepo) FindByID(_ context.Context, id int64) (*model.ClassRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeClassRoomRepo) RoomNumberExists(_ context.Context, roomNumber string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomNumberChecks++
	for id, c := range r.items {
		if c.RoomNumber == roomNumber && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClassRoomRepo) Update(_ context.Context, room *model.ClassRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[room.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[room.ID] = *room
	return nil
}

func (r *fakeClassRoomRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeClassRoomRepo) List(_ context.Context, filter repository.ClassRoomFilter, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = &filter
	page = page.Normalize()
	return model.NewPage[model.ClassRoom](nil, page, 0), nil
}

// --- publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.EntityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.EntityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

var errPublish = errors.New("nats: no servers available")

var fixedNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var testValidator = validation.New()

func int64Ptr(v int64) *int64 { return &v }

var errInvalidSortFromStore = fmt.Errorf("%w: %q", repository.ErrInvalidSort, "password")
