package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localtalent/console/internal/core/domain"
)

// NotificationSource hands out pending notifications once.
type NotificationSource interface {
	Drain() []domain.Notification
}

type NotificationHandler struct {
	source NotificationSource
}

func NewNotificationHandler(source NotificationSource) *NotificationHandler {
	return &NotificationHandler{source: source}
}

// Drain returns and forgets the pending notifications, oldest first.
//
// @Summary      Pending notifications
// @Tags         console
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) Drain(c echo.Context) error {
	items := h.source.Drain()
	if items == nil {
		items = []domain.Notification{}
	}
	return c.JSON(http.StatusOK, items)
}
