// Package middleware holds the gin middleware specific to the booking API.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zad-edu/masadr2040/internal/models"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
	"github.com/zad-edu/masadr2040/pkg/response"
)

// ContextGateKey is the gin context key storing gate claims.
const ContextGateKey = "gateClaims"

type gateValidator interface {
	Validate(token string) (*models.GateClaims, error)
}

// Gate protects mutating routes: a request without a live gate token gets a
// 401 challenge and the client re-prompts for the password, then retries.
func Gate(gate gateValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrGateRequired)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrGateRequired, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := gate.Validate(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextGateKey, claims)
		c.Next()
	}
}
