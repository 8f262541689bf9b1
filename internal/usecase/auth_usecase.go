package usecase

import (
	"context"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"
	"healthcare-portal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, tokenID string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// Authenticate resolves a bearer token to its account (password stripped) and token id.
	Authenticate(ctx context.Context, token string) (*entity.User, string, error)
}

type authUsecase struct {
	log        *logrus.Logger
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
	directory  service.DoctorDirectory
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	directory service.DoctorDirectory,
) AuthUsecase {
	return &authUsecase{
		log:        log,
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		directory:  directory,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := entity.RolePatient
	if req.Role != "" {
		role = entity.Role(req.Role)
	}
	if role != entity.RolePatient && role != entity.RoleDoctor {
		return nil, ErrInvalidRole
	}

	user, err := newAccount(ctx, u.log, u.userRepo, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	// A Redis failure must not leave an account behind.
	token, tokenID, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := insertAccount(ctx, u.log, u.userRepo, user); err != nil {
		if revokeErr := u.tokenStore.Revoke(ctx, user.ID, tokenID); revokeErr != nil {
			u.log.Warnf("Failed to revoke token of unsaved account: %+v", revokeErr)
		}
		return nil, err
	}

	if role == entity.RoleDoctor {
		_ = u.directory.Invalidate(ctx)
	}

	return converter.UserToAuthResponse(user, token), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, entity.NormalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, _, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return converter.UserToAuthResponse(user, token), nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := u.tokenStore.Revoke(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, string, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, "", ErrNotAuthorized
	}

	active, err := u.tokenStore.Exists(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check access token in Redis: %+v", err)
		return nil, "", err
	}
	if !active {
		return nil, "", ErrNotAuthorized
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrNotAuthorized
	}

	user.Password = ""
	return user, claims.TokenID, nil
}

// issueToken signs an access token and records it in the allow-list for its lifetime.
func (u *authUsecase) issueToken(ctx context.Context, user *entity.User) (string, string, error) {
	token, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return "", "", err
	}

	if err := u.tokenStore.Save(ctx, user.ID, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return "", "", err
	}

	return token, tokenID, nil
}
