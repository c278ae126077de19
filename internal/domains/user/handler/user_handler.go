package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// Register - POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile - GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "not authenticated")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), userID.(uuid.UUID))
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListUsers - GET /admin/users?limit=20&offset=0
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		offset = o
	}

	users, total, err := h.service.List(c.Request.Context(), limit, offset)
	if user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, &response.Meta{
		Limit: limit,
		Total: total,
	})
}

// UpdateUserRole - PUT /admin/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req user.UpdateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	if err := h.service.UpdateRole(c.Request.Context(), id, req.Role); user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "role": req.Role})
}
