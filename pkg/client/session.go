package client

import (
	"healthcare-portal/internal/delivery/dto"

	"github.com/google/uuid"
)

// Session is the signed-in state of one portal user. The caller owns it and
// passes it to every authenticated Client call; a zero Session is signed out.
type Session struct {
	Token string
	User  *dto.UserResponse
}

// Load stores the token and account returned by register or login.
func (s *Session) Load(auth *dto.AuthResponse) {
	s.Token = auth.Token
	s.User = &dto.UserResponse{
		ID:    auth.ID,
		Name:  auth.Name,
		Email: auth.Email,
		Role:  auth.Role,
	}
}

func (s *Session) Clear() {
	s.Token = ""
	s.User = nil
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Role returns the signed-in role, or "" when signed out.
func (s *Session) Role() string {
	if !s.Authenticated() {
		return ""
	}
	return s.User.Role
}

func (s *Session) UserID() uuid.UUID {
	if !s.Authenticated() {
		return uuid.Nil
	}
	return s.User.ID
}
