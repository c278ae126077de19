package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/blogpost"
	"blog-backend/internal/shared/export"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

// maxUploadSize caps multipart reads before the image processor sees them.
const maxUploadSize = 10 << 20

type BlogPostHandler struct {
	service blogpost.Service
}

func NewBlogPostHandler(svc blogpost.Service) *BlogPostHandler {
	return &BlogPostHandler{service: svc}
}

// ============================================
// CRUD
// ============================================

// Create - POST /v1/posts
func (h *BlogPostHandler) Create(c *gin.Context) {
	var req blogpost.CreatePostRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID - GET /v1/posts/:id
func (h *BlogPostHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id, middleware.IsAdmin(c))
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List - GET /v1/posts?search=&active=&deleted=&author_id=&year=&month=&sort=&limit=&offset=
// Visibility filters (active, deleted) are honored for admins only; the
// service forces them for everyone else.
func (h *BlogPostHandler) List(c *gin.Context) {
	req := blogpost.ListPostsRequest{
		Search:        c.Query("search"),
		SortBy:        c.Query("sort"),
		Limit:         20,
		Offset:        0,
		ViewerIsAdmin: middleware.IsAdmin(c),
	}

	if v := c.Query("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			req.Active = &b
		}
	}
	if v := c.Query("deleted"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			req.Deleted = &b
		}
	}
	if v := c.Query("author_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid author_id")
			return
		}
		req.AuthorID = &id
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		req.Year = y
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		req.Month = m
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		req.Limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		req.Offset = o
	}

	posts, total, err := h.service.List(c.Request.Context(), req)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Limit: req.Limit,
		Total: total,
	})
}

// ListByAuthor - GET /v1/authors/:id/posts
func (h *BlogPostHandler) ListByAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	req := blogpost.ListPostsRequest{
		AuthorID:      &authorID,
		Limit:         20,
		ViewerIsAdmin: middleware.IsAdmin(c),
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		req.Limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o >= 0 {
		req.Offset = o
	}

	posts, total, err := h.service.List(c.Request.Context(), req)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Limit: req.Limit,
		Total: total,
	})
}

// Update - PUT /v1/posts/:id
func (h *BlogPostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req blogpost.UpdatePostRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ============================================
// INLINE TREE SAVE
// ============================================

// SaveTree - PUT /v1/posts/:id/tree
// Replaces the post's images and their nested descriptions with the
// submitted rows in one transaction. Blank rows are dropped, not saved.
func (h *BlogPostHandler) SaveTree(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req blogpost.SaveTreeRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.SaveTree(c.Request.Context(), id, &req)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ============================================
// ORDERING
// ============================================

// Reorder - PUT /v1/posts/reorder
// Body is the complete ordered id list; positions persist as 0..n-1.
func (h *BlogPostHandler) Reorder(c *gin.Context) {
	var req blogpost.ReorderRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	if err := h.service.ReorderPosts(c.Request.Context(), req.IDs); blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.IDs)})
}

// ReorderImages - PUT /v1/posts/:id/images/reorder
func (h *BlogPostHandler) ReorderImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	var req blogpost.ReorderRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	if err := h.service.ReorderImages(c.Request.Context(), id, req.IDs); blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.IDs)})
}

// ============================================
// DELETES
// ============================================

// Delete - DELETE /v1/posts/:id (soft delete, reversible)
func (h *BlogPostHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), id); blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// Restore - POST /v1/posts/:id/restore
func (h *BlogPostHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	if err := h.service.Restore(c.Request.Context(), id); blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": false})
}

// HardDelete - DELETE /v1/posts/:id/permanent (admin only, irreversible)
func (h *BlogPostHandler) HardDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	if err := h.service.HardDelete(c.Request.Context(), id); blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "purged": true})
}

// ============================================
// UPLOADS
// ============================================

func readUpload(c *gin.Context, field string) (data []byte, filename, contentType string, ok bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("missing %q file field", field))
		return nil, "", "", false
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		response.BadRequest(c, "failed to read uploaded file")
		return nil, "", "", false
	}

	return data, header.Filename, header.Header.Get("Content-Type"), true
}

// UploadBanner - POST /v1/posts/:id/banner
// Replaces the post's cover image; at most one banner per post.
func (h *BlogPostHandler) UploadBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	data, _, _, ok := readUpload(c, "file")
	if !ok {
		return
	}

	resp, err := h.service.UploadBanner(c.Request.Context(), id, data)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// UploadImage - POST /v1/posts/:id/images
// Appends a gallery image at the end of the post's image order.
func (h *BlogPostHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	data, _, _, ok := readUpload(c, "file")
	if !ok {
		return
	}

	resp, err := h.service.UploadImage(c.Request.Context(), id, data)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// UploadDocument - POST /v1/posts/:id/document
func (h *BlogPostHandler) UploadDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	data, filename, contentType, ok := readUpload(c, "file")
	if !ok {
		return
	}

	url, err := h.service.UploadDocument(c.Request.Context(), id, filename, contentType, data)
	if blogpost.HandlePostError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"document_url": url})
}

// ============================================
// EXPORT
// ============================================

// Export - POST /v1/posts/export
// Streams an xlsx attachment with the selected posts.
func (h *BlogPostHandler) Export(c *gin.Context) {
	var req blogpost.ExportPostsRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.ViewerIsAdmin = middleware.IsAdmin(c)

	f, err := h.service.ExportToExcel(c.Request.Context(), req)
	if blogpost.HandlePostError(c, err) {
		return
	}

	filename := blogpost.ExportResource().Filename
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", export.ContentTypeXLSX)

	if err := f.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write excel file")
		return
	}
}
