package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memState is shared in-memory storage for the workflow tests. Unlike
// the function-field mocks it holds real state, so a test can drive a
// multi-step scenario and observe the writes of earlier steps in later
// ones. Three thin adapters expose it as the profile, request and
// message repositories.
type memState struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]*domain.Profile
	trainers map[primitive.ObjectID]*domain.TrainerProfile
	clients  map[primitive.ObjectID]*domain.ClientProfile
	requests map[primitive.ObjectID]*domain.TrainerRequest
	messages []domain.Message
	msgClock time.Time

	// failLink makes ApproveAndLink fail after the approve write, the
	// way a standalone mongod without transactions can.
	failLink bool
}

func newMemState() *memState {
	return &memState{
		profiles: make(map[primitive.ObjectID]*domain.Profile),
		trainers: make(map[primitive.ObjectID]*domain.TrainerProfile),
		clients:  make(map[primitive.ObjectID]*domain.ClientProfile),
		requests: make(map[primitive.ObjectID]*domain.TrainerRequest),
		msgClock: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

// addUser seeds a profile plus its role extension, the same dual-row
// shape the auth service writes at signup.
func (st *memState) addUser(t *testing.T, role domain.Role, email string) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	st.profiles[id] = &domain.Profile{ID: id, FullName: email, Email: email, Role: role}
	switch role {
	case domain.RoleTrainer:
		st.trainers[id] = &domain.TrainerProfile{ID: id}
	case domain.RoleClient:
		st.clients[id] = &domain.ClientProfile{ID: id}
	default:
		t.Fatalf("addUser: unknown role %q", role)
	}
	return id
}

type memProfileRepo struct{ st *memState }
type memRequestRepo struct{ st *memState }
type memMessageRepo struct{ st *memState }

var _ repository.ProfileRepository = (*memProfileRepo)(nil)
var _ repository.RequestRepository = (*memRequestRepo)(nil)
var _ repository.MessageRepository = (*memMessageRepo)(nil)

// --- ProfileRepository ---

func (r *memProfileRepo) Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, p := range r.st.profiles {
		if p.Email == profile.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
	}
	profile.ID = primitive.NewObjectID()
	clone := *profile
	r.st.profiles[profile.ID] = &clone
	return profile.ID, nil
}

func (r *memProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, p := range r.st.profiles {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memProfileRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	p, ok := r.st.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *profile
	r.st.profiles[profile.ID] = &clone
	return nil
}

func (r *memProfileRepo) ListTrainers(ctx context.Context) ([]domain.Profile, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Profile
	for _, p := range r.st.profiles {
		if p.Role == domain.RoleTrainer {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProfileRepo) CreateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	clone := *tp
	r.st.trainers[tp.ID] = &clone
	return nil
}

func (r *memProfileRepo) GetTrainerProfile(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	tp, ok := r.st.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *tp
	return &clone, nil
}

func (r *memProfileRepo) UpdateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.trainers[tp.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *tp
	r.st.trainers[tp.ID] = &clone
	return nil
}

func (r *memProfileRepo) CreateClientProfile(ctx context.Context, cp *domain.ClientProfile) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	clone := *cp
	r.st.clients[cp.ID] = &clone
	return nil
}

func (r *memProfileRepo) GetClientProfile(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cp, ok := r.st.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *cp
	return &clone, nil
}

func (r *memProfileRepo) UpdateClientProfile(ctx context.Context, cp *domain.ClientProfile) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.clients[cp.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *cp
	r.st.clients[cp.ID] = &clone
	return nil
}

func (r *memProfileRepo) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ClientProfile, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.ClientProfile
	for _, cp := range r.st.clients {
		if cp.TrainerID != nil && *cp.TrainerID == trainerID {
			out = append(out, *cp)
		}
	}
	return out, nil
}

// --- RequestRepository ---

func (r *memRequestRepo) Create(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.requests {
		if existing.ClientID == req.ClientID && existing.TrainerID == req.TrainerID && existing.Status == domain.RequestPending {
			return primitive.NilObjectID, repository.ErrDuplicateRequest
		}
	}
	req.ID = primitive.NewObjectID()
	req.Status = domain.RequestPending
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	clone := *req
	r.st.requests[req.ID] = &clone
	return req.ID, nil
}

func (r *memRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	req, ok := r.st.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *memRequestRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.TrainerRequest
	for _, req := range r.st.requests {
		if req.TrainerID == trainerID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRequestRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.TrainerRequest
	for _, req := range r.st.requests {
		if req.ClientID == clientID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRequestRepo) HasPending(ctx context.Context, clientID, trainerID primitive.ObjectID) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, req := range r.st.requests {
		if req.ClientID == clientID && req.TrainerID == trainerID && req.Status == domain.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRequestRepo) ApproveAndLink(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	req, ok := r.st.requests[requestID]
	if !ok || req.TrainerID != trainerID || req.Status != domain.RequestPending {
		return nil, repository.ErrNotFound
	}
	req.Status = domain.RequestApproved
	req.UpdatedAt = time.Now().UTC()
	if r.st.failLink {
		return nil, repository.ErrLinkFailed
	}
	cp, ok := r.st.clients[req.ClientID]
	if !ok {
		return nil, repository.ErrUpdateFailed
	}
	tid := req.TrainerID
	cp.TrainerID = &tid
	clone := *req
	return &clone, nil
}

func (r *memRequestRepo) Reject(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	req, ok := r.st.requests[requestID]
	if !ok || req.TrainerID != trainerID || req.Status != domain.RequestPending {
		return nil, repository.ErrNotFound
	}
	req.Status = domain.RequestRejected
	req.UpdatedAt = time.Now().UTC()
	clone := *req
	return &clone, nil
}

// --- MessageRepository ---

func (r *memMessageRepo) Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	r.st.msgClock = r.st.msgClock.Add(time.Second)
	msg.CreatedAt = r.st.msgClock
	r.st.messages = append(r.st.messages, *msg)
	return msg.ID, nil
}

func (r *memMessageRepo) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Message
	for _, msg := range r.st.messages {
		if (msg.SenderID == a && msg.RecipientID == b) || (msg.SenderID == b && msg.RecipientID == a) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memMessageRepo) MarkRead(ctx context.Context, recipientID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	now := time.Now().UTC()
	var n int64
	for i := range r.st.messages {
		msg := &r.st.messages[i]
		if msg.RecipientID != recipientID || msg.ReadAt != nil {
			continue
		}
		for _, id := range ids {
			if msg.ID == id {
				msg.ReadAt = &now
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *memMessageRepo) CountUnread(ctx context.Context, recipientID, senderID primitive.ObjectID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for _, msg := range r.st.messages {
		if msg.RecipientID == recipientID && msg.SenderID == senderID && msg.ReadAt == nil {
			n++
		}
	}
	return n, nil
}
