package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/response"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidRole        = errors.New("invalid role")
)

var userErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrUserNotFound:       {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "The specified user does not exist"},
	ErrEmailAlreadyExists: {Status: http.StatusConflict, Code: "CONFLICT", Message: "A user with this email already exists"},
	ErrInvalidCredentials: {Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Invalid email or password"},
	ErrUserInactive:       {Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "This account has been deactivated"},
	ErrInvalidRole:        {Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Role must be admin or staff"},
}

// HandleUserError maps a domain error to an HTTP response.
// Returns true when err was non-nil and a response was written.
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range userErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("[UserHandler] unexpected error")
	response.InternalServerError(c, "Internal server error")
	return true
}
