package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cartsync/internal/model"
	"cartsync/pkg/response"
)

// Auth resolves the caller's scope from a Supabase bearer token. With
// a configured JWT secret the token is verified locally (HS256); the
// GoTrue user endpoint is the fallback when no secret is set.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc, err := m.resolveScope(token)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		SetScope(c, sc)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (m Middleware) resolveScope(token string) (model.Scope, error) {
	if secret := m.config.Supabase.JWTSecret; secret != "" {
		return m.verifyLocal(token, secret)
	}
	return m.verifyRemote(token)
}

// verifyLocal checks the token signature and expiry against the
// project's JWT secret without a network round trip.
func (m Middleware) verifyLocal(token, secret string) (model.Scope, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return model.Scope{}, err
	}
	if !parsed.Valid {
		return model.Scope{}, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.Scope{}, fmt.Errorf("token has no subject")
	}
	email, _ := claims["email"].(string)

	return model.Scope{
		UserID:      sub,
		Email:       email,
		AccessToken: token,
	}, nil
}

// verifyRemote asks GoTrue who the token belongs to.
func (m Middleware) verifyRemote(token string) (model.Scope, error) {
	user, err := m.supabase.Auth().WithToken(token).GetUser()
	if err != nil {
		return model.Scope{}, err
	}

	return model.Scope{
		UserID:      user.ID.String(),
		Email:       user.Email,
		AccessToken: token,
	}, nil
}
