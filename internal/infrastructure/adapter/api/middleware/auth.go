package middleware

import (
	"strings"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/gin-gonic/gin"
)

const userKey = "auth_user"

// Authenticate resolves the bearer token to a user and stores it on the context
func Authenticate(accounts usecase.AccountUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, errs.ErrUnauthorized)
			return
		}

		user, err := accounts.Authenticate(c.Request.Context(), token)
		if err != nil {
			reject(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			reject(c, errs.ErrUnauthorized)
			return
		}
		if !user.IsAdmin {
			_ = c.Error(errs.ErrAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by Authenticate
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok && user != nil
}

func reject(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	_ = c.Error(err)
	c.Abort()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
