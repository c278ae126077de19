package blogpost

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/response"
)

var (
	ErrPostNotFound       = errors.New("blog post not found")
	ErrImageNotFound      = errors.New("blog post image not found")
	ErrDuplicateTitleText = errors.New("a post with the same title and text already exists")
	ErrAuthorNotFound     = errors.New("one or more authors do not exist")
	ErrReorderMismatch    = errors.New("reorder list does not match the records in scope")
	ErrEmptyFile          = errors.New("uploaded file is empty")
	ErrInvalidImage       = errors.New("uploaded file is not a valid image")
)

var postErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrPostNotFound:       {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "The specified blog post does not exist"},
	ErrImageNotFound:      {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "The specified blog post image does not exist"},
	ErrDuplicateTitleText: {Status: http.StatusConflict, Code: "CONFLICT", Message: "A post with the same title and text already exists"},
	ErrAuthorNotFound:     {Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "One or more authors do not exist"},
	ErrReorderMismatch:    {Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Reorder list must contain exactly the records being reordered"},
	ErrEmptyFile:          {Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Uploaded file is empty"},
	ErrInvalidImage:       {Status: http.StatusUnprocessableEntity, Code: "VALIDATION_FAILED", Message: "Uploaded file must be a JPEG or PNG image up to 5MB"},
}

// HandlePostError maps a domain error to an HTTP response.
// Returns true when err was non-nil and a response was written.
func HandlePostError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range postErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("[BlogPostHandler] unexpected error")
	response.InternalServerError(c, "Internal server error")
	return true
}
