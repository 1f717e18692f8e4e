package response

import (
	"log"
	"net/http"

	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/pkg/apperror"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// SetUser stores the authenticated user in the request context.
func SetUser(c *gin.Context, user *model.User) {
	c.Set(userKey, user)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(c *gin.Context) (*model.User, error) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	user, ok := value.(*model.User)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
