package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/server/http/dto"
)

// UserHandler manages account endpoints.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	in := model.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	}
	if req.Address != nil {
		in.Address = req.Address.Address()
	}
	if req.VendorProfile != nil {
		in.VendorProfile = &model.VendorProfile{
			StoreName: req.VendorProfile.StoreName,
			StoreSlug: req.VendorProfile.StoreSlug,
			IsActive:  req.VendorProfile.IsActive,
		}
	}

	user, token, err := h.facade.CreateUser(c.Request.Context(), in, CurrentUserRole(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			writeError(c, http.StatusBadRequest, "Name, email and password are required")
		case errors.Is(err, domainErrors.ErrInvalidRole):
			writeError(c, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			writeError(c, http.StatusBadRequest, "User already exists")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)})
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.facade.User(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "User not found")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := model.UpdateUserInput{Name: req.Name, Email: req.Email}
	if req.Address != nil {
		addr := req.Address.Address()
		in.Address = &addr
	}
	if req.VendorProfile != nil {
		in.VendorProfile = &model.VendorProfile{
			StoreName: req.VendorProfile.StoreName,
			StoreSlug: req.VendorProfile.StoreSlug,
			IsActive:  req.VendorProfile.IsActive,
		}
	}

	user, err := h.facade.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			writeError(c, http.StatusBadRequest, "Email already in use")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ChangePassword handles PUT /users/:id/password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "New password is required")
		return
	}

	err := h.facade.ChangeUserPassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			writeError(c, http.StatusUnauthorized, "Current password is incorrect")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteUser(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "User not found")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// AccountBalance handles GET /users/:id/account-balance.
func (h *UserHandler) AccountBalance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.facade.AccountBalance(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "User not found")
		default:
			writeError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountBalanceResponse(view))
}
