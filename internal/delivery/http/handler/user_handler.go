package handler

import (
	"net/http"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/response"
	"healthcare-portal/pkg/validator"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		log:         log,
	}
}

// GetAllUsers lists every account (admin)
// @Summary List users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to load users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// GetDoctors lists doctor accounts
// @Summary List doctors
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/doctors [get]
func (h *UserHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.userUsecase.GetDoctors(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to load doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// CreateUser creates a doctor or patient account (admin)
// @Summary Create user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create user")
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}
