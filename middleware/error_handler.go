package middleware

import (
	apperrors "restay/errors"
	"restay/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors attached to the context onto the response
// envelope. Typed errors render their staff-facing message; anything
// untyped is a server error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			if appErr := apperrors.GetAppError(err); appErr != nil {
				response.Error(c, 0, apperrors.UserMessage(appErr))
				return
			}

			response.ServerError(c)
		}
	}
}
