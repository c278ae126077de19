package author

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/response"
)

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrEmailExists     = errors.New("author email already exists")
	ErrInvalidBirthDay = errors.New("birth date cannot be in the future")
)

var authorErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrAuthorNotFound:  {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "The specified author does not exist"},
	ErrEmailExists:     {Status: http.StatusConflict, Code: "CONFLICT", Message: "An author with this email already exists"},
	ErrInvalidBirthDay: {Status: http.StatusUnprocessableEntity, Code: "VALIDATION_FAILED", Message: "Birth date cannot be in the future"},
}

// HandleAuthorError maps a domain error to an HTTP response.
func HandleAuthorError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range authorErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("[AuthorHandler] unexpected error")
	response.InternalServerError(c, "Internal server error")
	return true
}
