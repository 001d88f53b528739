package service

import (
	"context"
	"sort"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for service tests.

type memRoutineRepo struct {
	routines map[primitive.ObjectID]*domain.Routine
}

func newMemRoutineRepo() *memRoutineRepo {
	return &memRoutineRepo{routines: make(map[primitive.ObjectID]*domain.Routine)}
}

func (m *memRoutineRepo) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *routine
	cp.ID = id
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.routines[id] = &cp
	return id, nil
}

func (m *memRoutineRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	r, ok := m.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRoutineRepo) GetByUserID(ctx context.Context, userID int64, includeInactive bool) ([]domain.Routine, error) {
	var out []domain.Routine
	for _, r := range m.routines {
		if r.UserID == userID && (includeInactive || r.IsActive) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRoutineRepo) GetActiveByUserID(ctx context.Context, userID int64) (*domain.Routine, error) {
	for _, r := range m.routines {
		if r.UserID == userID && r.IsActive {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memRoutineRepo) Update(ctx context.Context, routine *domain.Routine) error {
	if _, ok := m.routines[routine.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *routine
	cp.UpdatedAt = time.Now()
	m.routines[routine.ID] = &cp
	return nil
}

func (m *memRoutineRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r, ok := m.routines[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.IsActive = active
	return nil
}

func (m *memRoutineRepo) DeactivateAllForUser(ctx context.Context, userID int64, exclude primitive.ObjectID) error {
	for _, r := range m.routines {
		if r.UserID == userID && r.ID != exclude {
			r.IsActive = false
		}
	}
	return nil
}

func (m *memRoutineRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.routines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.routines, id)
	return nil
}

type memDayRepo struct {
	days map[primitive.ObjectID]*domain.WorkoutDay
}

func newMemDayRepo() *memDayRepo {
	return &memDayRepo{days: make(map[primitive.ObjectID]*domain.WorkoutDay)}
}

func (m *memDayRepo) Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *day
	cp.ID = id
	m.days[id] = &cp
	return id, nil
}

func (m *memDayRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	d, ok := m.days[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDayRepo) GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	var out []domain.WorkoutDay
	for _, d := range m.days {
		if d.RoutineID == routineID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memDayRepo) Update(ctx context.Context, day *domain.WorkoutDay) error {
	if _, ok := m.days[day.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *day
	m.days[day.ID] = &cp
	return nil
}

func (m *memDayRepo) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	d, ok := m.days[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Order = order
	return nil
}

func (m *memDayRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.days, id)
	return nil
}

func (m *memDayRepo) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	for id, d := range m.days {
		if d.RoutineID == routineID {
			delete(m.days, id)
		}
	}
	return nil
}

type memExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.RoutineExercise
}

func newMemExerciseRepo() *memExerciseRepo {
	return &memExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.RoutineExercise)}
}

func (m *memExerciseRepo) Create(ctx context.Context, exercise *domain.RoutineExercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *exercise
	cp.ID = id
	m.exercises[id] = &cp
	return id, nil
}

func (m *memExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineExercise, error) {
	ex, ok := m.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ex
	return &cp, nil
}

func (m *memExerciseRepo) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.RoutineExercise, error) {
	var out []domain.RoutineExercise
	for _, ex := range m.exercises {
		if ex.DayID == dayID {
			out = append(out, *ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memExerciseRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.RoutineExercise, error) {
	var out []domain.RoutineExercise
	for _, ex := range m.exercises {
		if ex.UserID == userID {
			out = append(out, *ex)
		}
	}
	return out, nil
}

func (m *memExerciseRepo) Update(ctx context.Context, exercise *domain.RoutineExercise) error {
	if _, ok := m.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *exercise
	m.exercises[exercise.ID] = &cp
	return nil
}

func (m *memExerciseRepo) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	ex, ok := m.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	ex.Order = order
	return nil
}

func (m *memExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.exercises, id)
	return nil
}

func (m *memExerciseRepo) DeleteByDayID(ctx context.Context, dayID primitive.ObjectID) error {
	for id, ex := range m.exercises {
		if ex.DayID == dayID {
			delete(m.exercises, id)
		}
	}
	return nil
}

func (m *memExerciseRepo) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	for id, ex := range m.exercises {
		if ex.RoutineID == routineID {
			delete(m.exercises, id)
		}
	}
	return nil
}

type memSessionRepo struct {
	sessions map[primitive.ObjectID]*domain.WorkoutSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[primitive.ObjectID]*domain.WorkoutSession)}
}

func (m *memSessionRepo) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *session
	cp.ID = id
	cp.CreatedAt = time.Now()
	m.sessions[id] = &cp
	return id, nil
}

func (m *memSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) GetByUserID(ctx context.Context, userID int64, limit int64) ([]domain.WorkoutSession, error) {
	var out []domain.WorkoutSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.After(out[j].ScheduledDate) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSessionRepo) GetByUserAndScheduledRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.WorkoutSession, error) {
	var out []domain.WorkoutSession
	for _, s := range m.sessions {
		if s.UserID == userID && !s.ScheduledDate.Before(from) && s.ScheduledDate.Before(to) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (m *memSessionRepo) Update(ctx context.Context, session *domain.WorkoutSession) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *session
	cp.UpdatedAt = time.Now()
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memSessionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	for id, s := range m.sessions {
		if s.RoutineID == routineID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memSessionRepo) DeletePlannedInRange(ctx context.Context, userID int64, routineID primitive.ObjectID, from, to time.Time) error {
	for id, s := range m.sessions {
		if s.UserID == userID && s.RoutineID == routineID && s.Status == domain.SessionPlanned &&
			!s.ScheduledDate.Before(from) && s.ScheduledDate.Before(to) {
			delete(m.sessions, id)
		}
	}
	return nil
}

type memPerformanceRepo struct {
	perfs map[primitive.ObjectID]*domain.ExercisePerformance
}

func newMemPerformanceRepo() *memPerformanceRepo {
	return &memPerformanceRepo{perfs: make(map[primitive.ObjectID]*domain.ExercisePerformance)}
}

func (m *memPerformanceRepo) Create(ctx context.Context, perf *domain.ExercisePerformance) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *perf
	cp.ID = id
	cp.CreatedAt = time.Now()
	m.perfs[id] = &cp
	return id, nil
}

func (m *memPerformanceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExercisePerformance, error) {
	p, ok := m.perfs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPerformanceRepo) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExercisePerformance, error) {
	var out []domain.ExercisePerformance
	for _, p := range m.perfs {
		if p.SessionID == sessionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPerformanceRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.ExercisePerformance, error) {
	var out []domain.ExercisePerformance
	for _, p := range m.perfs {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPerformanceRepo) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	for id, p := range m.perfs {
		if p.SessionID == sessionID {
			delete(m.perfs, id)
		}
	}
	return nil
}

// passthroughTx runs the callback without transactional semantics.
type passthroughTx struct{}

func (passthroughTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
