package service

import (
	"context"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Function-field mocks shared by the service tests. Unset fields fall
// back to repository.ErrNotFound or a zero value.

type mockProfileRepo struct {
	createFn                func(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error)
	getByEmailFn            func(ctx context.Context, email string) (*domain.Profile, error)
	getByIDFn               func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	updateFn                func(ctx context.Context, profile *domain.Profile) error
	listTrainersFn          func(ctx context.Context) ([]domain.Profile, error)
	createTrainerProfileFn  func(ctx context.Context, tp *domain.TrainerProfile) error
	getTrainerProfileFn     func(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	updateTrainerProfileFn  func(ctx context.Context, tp *domain.TrainerProfile) error
	createClientProfileFn   func(ctx context.Context, cp *domain.ClientProfile) error
	getClientProfileFn      func(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error)
	updateClientProfileFn   func(ctx context.Context, cp *domain.ClientProfile) error
	getClientsByTrainerIDFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ClientProfile, error)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) ListTrainers(ctx context.Context) ([]domain.Profile, error) {
	if m.listTrainersFn != nil {
		return m.listTrainersFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepo) CreateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error {
	if m.createTrainerProfileFn != nil {
		return m.createTrainerProfileFn(ctx, tp)
	}
	return nil
}

func (m *mockProfileRepo) GetTrainerProfile(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	if m.getTrainerProfileFn != nil {
		return m.getTrainerProfileFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepo) UpdateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error {
	if m.updateTrainerProfileFn != nil {
		return m.updateTrainerProfileFn(ctx, tp)
	}
	return nil
}

func (m *mockProfileRepo) CreateClientProfile(ctx context.Context, cp *domain.ClientProfile) error {
	if m.createClientProfileFn != nil {
		return m.createClientProfileFn(ctx, cp)
	}
	return nil
}

func (m *mockProfileRepo) GetClientProfile(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	if m.getClientProfileFn != nil {
		return m.getClientProfileFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepo) UpdateClientProfile(ctx context.Context, cp *domain.ClientProfile) error {
	if m.updateClientProfileFn != nil {
		return m.updateClientProfileFn(ctx, cp)
	}
	return nil
}

func (m *mockProfileRepo) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ClientProfile, error) {
	if m.getClientsByTrainerIDFn != nil {
		return m.getClientsByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

type mockRequestRepo struct {
	createFn         func(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error)
	getByIDFn        func(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error)
	getByTrainerIDFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error)
	getByClientIDFn  func(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerRequest, error)
	hasPendingFn     func(ctx context.Context, clientID, trainerID primitive.ObjectID) (bool, error)
	approveAndLinkFn func(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error)
	rejectFn         func(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRequestRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	if m.getByTrainerIDFn != nil {
		return m.getByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (m *mockRequestRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	if m.getByClientIDFn != nil {
		return m.getByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *mockRequestRepo) HasPending(ctx context.Context, clientID, trainerID primitive.ObjectID) (bool, error) {
	if m.hasPendingFn != nil {
		return m.hasPendingFn(ctx, clientID, trainerID)
	}
	return false, nil
}

func (m *mockRequestRepo) ApproveAndLink(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	if m.approveAndLinkFn != nil {
		return m.approveAndLinkFn(ctx, requestID, trainerID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRequestRepo) Reject(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, requestID, trainerID)
	}
	return nil, repository.ErrNotFound
}

type mockProgramRepo struct {
	createFn                  func(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error)
	getByIDFn                 func(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error)
	getTemplatesByTrainerIDFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	getByClientIDFn           func(ctx context.Context, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	updateFn                  func(ctx context.Context, program *domain.WorkoutProgram) error
	deleteFn                  func(ctx context.Context, id, trainerID primitive.ObjectID) error
}

func (m *mockProgramRepo) Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, program)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProgramRepo) GetTemplatesByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	if m.getTemplatesByTrainerIDFn != nil {
		return m.getTemplatesByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (m *mockProgramRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	if m.getByClientIDFn != nil {
		return m.getByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *mockProgramRepo) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, program)
	}
	return nil
}

func (m *mockProgramRepo) Delete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, trainerID)
	}
	return nil
}

type mockCheckInRepo struct {
	createFn         func(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	getByIDFn        func(ctx context.Context, id primitive.ObjectID) (*domain.CheckIn, error)
	getByClientIDFn  func(ctx context.Context, clientID primitive.ObjectID) ([]domain.CheckIn, error)
	getByTrainerIDFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.CheckIn, error)
	updateFn         func(ctx context.Context, checkIn *domain.CheckIn) error
}

func (m *mockCheckInRepo) Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, checkIn)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockCheckInRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CheckIn, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockCheckInRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.CheckIn, error) {
	if m.getByClientIDFn != nil {
		return m.getByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *mockCheckInRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.CheckIn, error) {
	if m.getByTrainerIDFn != nil {
		return m.getByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (m *mockCheckInRepo) Update(ctx context.Context, checkIn *domain.CheckIn) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, checkIn)
	}
	return nil
}

type mockMessageRepo struct {
	createFn          func(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	getConversationFn func(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error)
	markReadFn        func(ctx context.Context, recipientID primitive.ObjectID, ids []primitive.ObjectID) (int64, error)
	countUnreadFn     func(ctx context.Context, recipientID, senderID primitive.ObjectID) (int64, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockMessageRepo) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	if m.getConversationFn != nil {
		return m.getConversationFn(ctx, a, b)
	}
	return nil, nil
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, recipientID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, recipientID, ids)
	}
	return 0, nil
}

func (m *mockMessageRepo) CountUnread(ctx context.Context, recipientID, senderID primitive.ObjectID) (int64, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, recipientID, senderID)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn         func(ctx context.Context, session *domain.VideoSession) (primitive.ObjectID, error)
	getByIDFn        func(ctx context.Context, id primitive.ObjectID) (*domain.VideoSession, error)
	getByTrainerIDFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.VideoSession, error)
	getByClientIDFn  func(ctx context.Context, clientID primitive.ObjectID) ([]domain.VideoSession, error)
	updateFn         func(ctx context.Context, session *domain.VideoSession) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.VideoSession) (primitive.ObjectID, error) {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoSession, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSessionRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.VideoSession, error) {
	if m.getByTrainerIDFn != nil {
		return m.getByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (m *mockSessionRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.VideoSession, error) {
	if m.getByClientIDFn != nil {
		return m.getByClientIDFn(ctx, clientID)
	}
	return nil, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, session *domain.VideoSession) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, session)
	}
	return nil
}

type mockFileStorage struct {
	uploadURLFn   func(ctx context.Context, objectKey, contentType string, expiry time.Duration) (string, error)
	downloadURLFn func(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
	deleteFn      func(ctx context.Context, objectKey string) error
}

func (m *mockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expiry time.Duration) (string, error) {
	if m.uploadURLFn != nil {
		return m.uploadURLFn(ctx, objectKey, contentType, expiry)
	}
	return "https://storage.example.com/" + objectKey, nil
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	if m.downloadURLFn != nil {
		return m.downloadURLFn(ctx, objectKey, expiry)
	}
	return "https://storage.example.com/" + objectKey, nil
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, objectKey)
	}
	return nil
}
