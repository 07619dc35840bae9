package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/domain"
)

// ContextUserKey is the echo context key holding the parsed token
const ContextUserKey = "user"

// UserClaims is the JWT payload carried by authenticated requests
type UserClaims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	Level     string `json:"level"`
	TierLevel int    `json:"tier_level"`
	jwt.RegisteredClaims
}

// JwtMiddleware validates the session token from the Authorization header
// or the session cookie. Absence or failure yields a 401 with an error
// body before any handler runs.
func JwtMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		ContextKey:  ContextUserKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:ventaro_session",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(UserClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		},
	})
}

// AdminOnly rejects authenticated users without the admin capability
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := CurrentUser(c)
		if claims == nil || claims.Level != domain.UserLevelAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Admin access required"})
		}
		return next(c)
	}
}

// CurrentUser extracts the validated claims from the request context
func CurrentUser(c echo.Context) *UserClaims {
	token, ok := c.Get(ContextUserKey).(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil
	}
	return claims
}

// IssueToken signs a session token for the given user
func IssueToken(secret string, user *domain.User, ttl time.Duration) (string, error) {
	claims := &UserClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Level:     user.Level,
		TierLevel: user.TierLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
