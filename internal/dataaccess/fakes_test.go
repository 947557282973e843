package dataaccess

import (
	"context"
	"sort"
	"time"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// In-memory repository fakes. They honor the same contracts as the mongo
// implementations, in particular the store-level ownership filters, and count
// reads so tests can observe cache hits.

type fakeUserRepo struct {
	users     map[primitive.ObjectID]domain.User
	listCalls int
	failWith  error
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	m := make(map[primitive.ObjectID]domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if f.failWith != nil {
		return primitive.NilObjectID, f.failWith
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (f *fakeUserRepo) ListAthletes(ctx context.Context) ([]domain.User, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.User
	for _, u := range f.users {
		if u.Role != domain.RoleCoach {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeUserRepo) SetOnboardingCompleted(ctx context.Context, id primitive.ObjectID, goal string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.OnboardingCompleted = true
	u.TrainingGoal = goal
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) AssignCoach(ctx context.Context, athleteID, coachID primitive.ObjectID) error {
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.users[athleteID]
	if !ok {
		return repository.ErrNotFound
	}
	u.CoachID = &coachID
	f.users[athleteID] = u
	return nil
}

type fakeRoutineRepo struct {
	routines map[primitive.ObjectID]domain.Routine
	getCalls int
	failWith error
}

func newFakeRoutineRepo(routines ...domain.Routine) *fakeRoutineRepo {
	m := make(map[primitive.ObjectID]domain.Routine, len(routines))
	for _, r := range routines {
		m[r.ID] = r
	}
	return &fakeRoutineRepo{routines: m}
}

func (f *fakeRoutineRepo) Save(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if f.failWith != nil {
		return primitive.NilObjectID, f.failWith
	}
	if routine.ID.IsZero() {
		routine.ID = primitive.NewObjectID()
	}
	f.routines[routine.ID] = *routine
	return routine.ID, nil
}

func (f *fakeRoutineRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	f.getCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	r, ok := f.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r
	return &out, nil
}

func (f *fakeRoutineRepo) GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Routine, error) {
	f.getCalls++
	for _, r := range f.routines {
		if r.IsActive && r.AthleteID != nil && *r.AthleteID == athleteID {
			out := r
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoutineRepo) ListByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Routine, error) {
	f.getCalls++
	var out []domain.Routine
	for _, r := range f.routines {
		if r.AthleteID != nil && *r.AthleteID == athleteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) ListTemplates(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error) {
	f.getCalls++
	var out []domain.Routine
	for _, r := range f.routines {
		if r.CoachID == coachID && r.AthleteID == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
	listCalls int
	failWith  error
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	m := make(map[primitive.ObjectID]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		m[ex.ID] = ex
	}
	return &fakeExerciseRepo{exercises: m}
}

func (f *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if f.failWith != nil {
		return primitive.NilObjectID, f.failWith
	}
	if exercise.ID.IsZero() {
		exercise.ID = primitive.NewObjectID()
	}
	f.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (f *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := ex
	return &out, nil
}

func (f *fakeExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Exercise
	for _, ex := range f.exercises {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	if _, ok := f.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	f.exercises[exercise.ID] = *exercise
	return nil
}

func (f *fakeExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID, createdBy primitive.ObjectID) error {
	ex, ok := f.exercises[id]
	if !ok || ex.CreatedBy != createdBy {
		return repository.ErrNotFound
	}
	delete(f.exercises, id)
	return nil
}

type fakeTrainingLogRepo struct {
	logs      []domain.TrainingLog
	listCalls int
	failWith  error
}

func newFakeTrainingLogRepo(logs ...domain.TrainingLog) *fakeTrainingLogRepo {
	return &fakeTrainingLogRepo{logs: logs}
}

func (f *fakeTrainingLogRepo) Create(ctx context.Context, log *domain.TrainingLog) (primitive.ObjectID, error) {
	if f.failWith != nil {
		return primitive.NilObjectID, f.failWith
	}
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	f.logs = append(f.logs, *log)
	return log.ID, nil
}

func (f *fakeTrainingLogRepo) ListByUserDesc(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.TrainingLog, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.TrainingLog
	for _, l := range f.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTrainingLogRepo) ListByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.TrainingLog, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.TrainingLog
	for _, l := range f.logs {
		if l.UserID == userID && !l.CompletedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]domain.Notification
	createCalls   int
	failWith      error
}

func newFakeNotificationRepo(notifications ...domain.Notification) *fakeNotificationRepo {
	m := make(map[primitive.ObjectID]domain.Notification, len(notifications))
	for _, n := range notifications {
		m[n.ID] = n
	}
	return &fakeNotificationRepo{notifications: m}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error) {
	f.createCalls++
	if f.failWith != nil {
		return primitive.NilObjectID, f.failWith
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	f.notifications[n.ID] = *n
	return n.ID, nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, limit int64) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	n, ok := f.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return repository.ErrNotFound
	}
	n.Read = true
	f.notifications[id] = n
	return nil
}

// testDeps bundles the fakes behind one DataService for a test.
type testDeps struct {
	users         *fakeUserRepo
	routines      *fakeRoutineRepo
	exercises     *fakeExerciseRepo
	logs          *fakeTrainingLogRepo
	notifications *fakeNotificationRepo
	service       *DataService
}

func newTestService() *testDeps {
	deps := &testDeps{
		users:         newFakeUserRepo(),
		routines:      newFakeRoutineRepo(),
		exercises:     newFakeExerciseRepo(),
		logs:          newFakeTrainingLogRepo(),
		notifications: newFakeNotificationRepo(),
	}
	deps.service = NewDataService(
		deps.users,
		deps.routines,
		deps.exercises,
		deps.logs,
		deps.notifications,
		cache.NewStore(cache.DefaultOptions()),
		zap.NewNop(),
	)
	return deps
}

func coachSession() *Session {
	return &Session{ID: primitive.NewObjectID(), Role: domain.RoleCoach, OnboardingCompleted: true, AuthProvider: "jwt"}
}

func athleteSession() *Session {
	return &Session{ID: primitive.NewObjectID(), Role: domain.RoleAthlete, OnboardingCompleted: true, AuthProvider: "jwt"}
}
