package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The password hash is never copied.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}

func UsersToListResponse(users []entity.User) *dto.UserListResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *UserToResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users: responses,
		Total: len(responses),
	}
}

func UserToAuthResponse(user *entity.User, token string) *dto.AuthResponse {
	return &dto.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
		Token: token,
	}
}
