package usecase

import (
	"context"
	"errors"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"

	"github.com/sirupsen/logrus"
)

type UserUsecase interface {
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetDoctors(ctx context.Context) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// SeedUser creates an account of any role unless the email is taken.
	// It reports whether the account was created.
	SeedUser(ctx context.Context, name, email, password string, role entity.Role) (bool, error)
}

type userUsecase struct {
	log       *logrus.Logger
	userRepo  repository.UserRepository
	directory service.DoctorDirectory
}

func NewUserUsecase(log *logrus.Logger, userRepo repository.UserRepository, directory service.DoctorDirectory) UserUsecase {
	return &userUsecase{
		log:       log,
		userRepo:  userRepo,
		directory: directory,
	}
}

func (u *userUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}
	return converter.UsersToListResponse(users), nil
}

func (u *userUsecase) GetDoctors(ctx context.Context) (*dto.UserListResponse, error) {
	doctors, err := u.directory.List(ctx)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return converter.UsersToListResponse(doctors), nil
}

func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if role != entity.RoleDoctor && role != entity.RolePatient {
		return nil, ErrInvalidRole
	}

	user, err := createAccount(ctx, u.log, u.userRepo, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	if role == entity.RoleDoctor {
		_ = u.directory.Invalidate(ctx)
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) SeedUser(ctx context.Context, name, email, password string, role entity.Role) (bool, error) {
	if !role.IsValid() {
		return false, ErrInvalidRole
	}

	_, err := createAccount(ctx, u.log, u.userRepo, name, email, password, role)
	if errors.Is(err, ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if role == entity.RoleDoctor {
		_ = u.directory.Invalidate(ctx)
	}
	return true, nil
}
