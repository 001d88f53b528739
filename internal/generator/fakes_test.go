package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"pcfit/routines-service/internal/clients"
	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory collaborators and repositories for generation tests.

type fakeUsers struct {
	profile *domain.UserProfile
	err     error
}

func (f *fakeUsers) GetProfile(ctx context.Context, token string) (*domain.UserProfile, error) {
	return f.profile, f.err
}

// fakeCatalog serves a fixed pool per muscle group, applying the same
// difficulty filter contract as the HTTP client.
type fakeCatalog struct {
	pools map[string][]clients.CatalogExercise
}

func (f *fakeCatalog) ByMuscleGroup(ctx context.Context, token, muscleGroup string) []clients.CatalogExercise {
	return f.pools[muscleGroup]
}

func (f *fakeCatalog) All(ctx context.Context, token string) []clients.CatalogExercise {
	var out []clients.CatalogExercise
	for _, pool := range f.pools {
		out = append(out, pool...)
	}
	return out
}

func (f *fakeCatalog) FetchFiltered(ctx context.Context, token, muscleGroup, difficulty string) []clients.CatalogExercise {
	items := f.pools[muscleGroup]
	if difficulty == "" {
		return items
	}
	var out []clients.CatalogExercise
	for _, ex := range items {
		if ex.Difficulty == "" || strings.EqualFold(ex.Difficulty, difficulty) {
			out = append(out, ex)
		}
	}
	return out
}

// catalogPool builds n exercises for a muscle group at a difficulty.
func catalogPool(muscleGroup, difficulty string, n int) []clients.CatalogExercise {
	out := make([]clients.CatalogExercise, n)
	for i := range out {
		out[i] = clients.CatalogExercise{
			ID:          muscleGroup + "-" + string(rune('a'+i)),
			Name:        "Ejercicio " + muscleGroup + " " + string(rune('A'+i)),
			MuscleGroup: muscleGroup,
			Difficulty:  difficulty,
			Equipment:   "peso_corporal",
		}
	}
	return out
}

type fakeRoutineRepo struct {
	routines map[primitive.ObjectID]*domain.Routine
	failOn   string
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{routines: make(map[primitive.ObjectID]*domain.Routine)}
}

func (f *fakeRoutineRepo) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if f.failOn == "create" {
		return primitive.NilObjectID, errors.New("create failed")
	}
	id := primitive.NewObjectID()
	cp := *routine
	cp.ID = id
	cp.CreatedAt = time.Now()
	f.routines[id] = &cp
	return id, nil
}

func (f *fakeRoutineRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	r, ok := f.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoutineRepo) GetByUserID(ctx context.Context, userID int64, includeInactive bool) ([]domain.Routine, error) {
	var out []domain.Routine
	for _, r := range f.routines {
		if r.UserID == userID && (includeInactive || r.IsActive) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) GetActiveByUserID(ctx context.Context, userID int64) (*domain.Routine, error) {
	for _, r := range f.routines {
		if r.UserID == userID && r.IsActive {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoutineRepo) Update(ctx context.Context, routine *domain.Routine) error {
	if _, ok := f.routines[routine.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *routine
	f.routines[routine.ID] = &cp
	return nil
}

func (f *fakeRoutineRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r, ok := f.routines[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.IsActive = active
	return nil
}

func (f *fakeRoutineRepo) DeactivateAllForUser(ctx context.Context, userID int64, exclude primitive.ObjectID) error {
	for _, r := range f.routines {
		if r.UserID == userID && r.ID != exclude {
			r.IsActive = false
		}
	}
	return nil
}

func (f *fakeRoutineRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.routines, id)
	return nil
}

type fakeDayRepo struct {
	days map[primitive.ObjectID]*domain.WorkoutDay
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[primitive.ObjectID]*domain.WorkoutDay)}
}

func (f *fakeDayRepo) Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *day
	cp.ID = id
	f.days[id] = &cp
	return id, nil
}

func (f *fakeDayRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	d, ok := f.days[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDayRepo) GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	var out []domain.WorkoutDay
	for order := 0; order < len(f.days)+1; order++ {
		for _, d := range f.days {
			if d.RoutineID == routineID && d.Order == order {
				out = append(out, *d)
			}
		}
	}
	return out, nil
}

func (f *fakeDayRepo) Update(ctx context.Context, day *domain.WorkoutDay) error {
	if _, ok := f.days[day.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *day
	f.days[day.ID] = &cp
	return nil
}

func (f *fakeDayRepo) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	d, ok := f.days[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Order = order
	return nil
}

func (f *fakeDayRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.days, id)
	return nil
}

func (f *fakeDayRepo) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	for id, d := range f.days {
		if d.RoutineID == routineID {
			delete(f.days, id)
		}
	}
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.RoutineExercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.RoutineExercise)}
}

func (f *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.RoutineExercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *exercise
	cp.ID = id
	f.exercises[id] = &cp
	return id, nil
}

func (f *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineExercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ex
	return &cp, nil
}

func (f *fakeExerciseRepo) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.RoutineExercise, error) {
	var out []domain.RoutineExercise
	for order := 0; order < len(f.exercises)+1; order++ {
		for _, ex := range f.exercises {
			if ex.DayID == dayID && ex.Order == order {
				out = append(out, *ex)
			}
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.RoutineExercise, error) {
	var out []domain.RoutineExercise
	for _, ex := range f.exercises {
		if ex.UserID == userID {
			out = append(out, *ex)
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) Update(ctx context.Context, exercise *domain.RoutineExercise) error {
	if _, ok := f.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *exercise
	f.exercises[exercise.ID] = &cp
	return nil
}

func (f *fakeExerciseRepo) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	ex, ok := f.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	ex.Order = order
	return nil
}

func (f *fakeExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.exercises, id)
	return nil
}

func (f *fakeExerciseRepo) DeleteByDayID(ctx context.Context, dayID primitive.ObjectID) error {
	for id, ex := range f.exercises {
		if ex.DayID == dayID {
			delete(f.exercises, id)
		}
	}
	return nil
}

func (f *fakeExerciseRepo) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	for id, ex := range f.exercises {
		if ex.RoutineID == routineID {
			delete(f.exercises, id)
		}
	}
	return nil
}

// fakeTx runs the callback directly; rollback is not simulated.
type fakeTx struct{}

func (fakeTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
