package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"github.com/ventaroai/ventaro-server/pkg/common"
	"go.uber.org/zap"
)

const sessionTTL = 30 * 24 * time.Hour

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", login)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and password are required", nil)
	}

	var user domain.User
	err := GetDB(c).
		Where("email = ? AND status = ?", payload.Email, common.ENABLED).
		First(&user).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if hashed != user.Password {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	token, err := webserver.IssueToken(GetApp(c).Config().Web.Secret, &user, sessionTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue session token", err.Error())
	}

	if err := GetDB(c).Model(&domain.User{}).
		Where("id = ?", user.ID).
		Update("last_login", time.Now()).Error; err != nil {
		zap.L().Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	return ok(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":         user.ID,
			"email":      user.Email,
			"level":      user.Level,
			"tier_level": user.TierLevel,
		},
	})
}
