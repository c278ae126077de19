package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/export"
	"blog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create - POST /v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID - GET /v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List - GET /v1/authors?limit=20&offset=0&search=
func (h *AuthorHandler) List(c *gin.Context) {
	req := author.ListAuthorsRequest{
		Search: c.Query("search"),
		Limit:  20,
		Offset: 0,
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		req.Limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		req.Offset = o
	}

	authors, total, err := h.service.List(c.Request.Context(), req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, authors, &response.Meta{
		Limit: req.Limit,
		Total: total,
	})
}

// Update - PUT /v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete - DELETE /v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// Export - POST /v1/authors/export
// Streams an xlsx attachment with the selected authors.
func (h *AuthorHandler) Export(c *gin.Context) {
	var req author.ExportAuthorsRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f, err := h.service.ExportToExcel(c.Request.Context(), req)
	if author.HandleAuthorError(c, err) {
		return
	}

	filename := author.ExportResource().Filename
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", export.ContentTypeXLSX)

	if err := f.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write excel file")
		return
	}
}
