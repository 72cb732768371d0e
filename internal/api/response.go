package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err as {"error":{"message","code"}} with the status
// matching its kind. Only the user-facing message is exposed.
func RespondError(c *gin.Context, err error) {
	code := string(apperr.KindOf(err))
	if code == "" {
		code = "internal_error"
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), ErrorEnvelope{
		Error: APIError{
			Message: apperr.UserMessage(err),
			Code:    code,
		},
	})
}
