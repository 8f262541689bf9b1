package usecase

import (
	"context"
	"io"
	"time"

	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	passwordCost = bcrypt.MinCost
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

type mockAppointmentRepository struct{ mock.Mock }

func (m *mockAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, doctorID)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	args := m.Called(ctx)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepository) Decide(ctx context.Context, id, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (bool, error) {
	args := m.Called(ctx, id, doctorID, status, notes)
	return args.Bool(0), args.Error(1)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Save(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, userID, tokenID, ttl).Error(0)
}

func (m *mockTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	args := m.Called(ctx, userID, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return m.Called(ctx, userID, tokenID).Error(0)
}

type mockDoctorDirectory struct{ mock.Mock }

func (m *mockDoctorDirectory) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *mockDoctorDirectory) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDoctorDirectory) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
