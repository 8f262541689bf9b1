package usecase

import (
	"context"
	"errors"
	"strings"

	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for new accounts.
var passwordCost = bcrypt.DefaultCost

// createAccount is shared by registration, admin creation and seeding.
// The email is normalized before the uniqueness check and the insert.
func createAccount(ctx context.Context, log *logrus.Logger, userRepo repository.UserRepository, name, email, password string, role entity.Role) (*entity.User, error) {
	user, err := newAccount(ctx, log, userRepo, name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := insertAccount(ctx, log, userRepo, user); err != nil {
		return nil, err
	}
	return user, nil
}

// newAccount checks the email is free and builds the account with a hashed
// password. Nothing is written.
func newAccount(ctx context.Context, log *logrus.Logger, userRepo repository.UserRepository, name, email, password string, role entity.Role) (*entity.User, error) {
	email = entity.NormalizeEmail(email)

	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	return &entity.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}, nil
}

func insertAccount(ctx context.Context, log *logrus.Logger, userRepo repository.UserRepository, user *entity.User) error {
	if err := userRepo.Create(ctx, user); err != nil {
		// unique index caught a concurrent insert
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailAlreadyExists
		}
		log.Warnf("Failed to create user: %+v", err)
		return err
	}
	return nil
}
