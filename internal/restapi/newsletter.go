package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/internal/mailer"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"github.com/ventaroai/ventaro-server/pkg/common"
)

type newsletterPayload struct {
	Email string `json:"email"`
}

func registerNewsletterRoutes() {
	webserver.PubPOST("/newsletter/subscribe", subscribeNewsletter)
}

func subscribeNewsletter(c echo.Context) error {
	var payload newsletterPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || !strings.Contains(payload.Email, "@") {
		return fail(c, http.StatusBadRequest, "INVALID_EMAIL", "A valid email is required", nil)
	}

	var count int64
	GetDB(c).Model(&domain.NewsletterSubscriber{}).
		Where("email = ?", payload.Email).
		Count(&count)
	if count == 0 {
		if err := GetDB(c).Create(&domain.NewsletterSubscriber{
			Email:     payload.Email,
			Status:    common.ENABLED,
			CreatedAt: time.Now(),
		}).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save subscription", err.Error())
		}
	}

	// confirmation email is best effort via the event bus
	GetApp(c).Bus().Publish(mailer.TopicNewsletterSubscribe, payload.Email)

	return ok(c, map[string]string{"status": "subscribed"})
}
