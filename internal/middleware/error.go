package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypilot/backend/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler converts errors attached to the gin context into JSON
// responses with the status their kind implies. Invalid input maps to
// 400, a missing collaborator to 503, everything else to 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, models.ErrServiceUnavailable):
			status = http.StatusServiceUnavailable
		case errors.Is(err, models.ErrDataIntegrity):
			status = http.StatusInternalServerError
		}

		if status == http.StatusInternalServerError {
			log.Printf("Error: %v", err)
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}
