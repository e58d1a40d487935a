package handlers

import (
	"net/http"

	"kidlearn/internal/logger"
	"kidlearn/internal/service"
)

// UserHandler serves the user registry
type UserHandler struct {
	userService *service.UserService
	log         *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// ListUsers returns all users, most recently active first
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser returns one user and marks them active
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input service.UserInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	user, err := h.userService.CreateUser(r.Context(), input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// UpdateUser changes a user's name and age
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	var input service.UserInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	user, err := h.userService.UpdateUser(r.Context(), id, input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user with their progress and achievements
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondSuccess(w)
}
