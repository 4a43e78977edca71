package controllers

import (
	"net/http"

	"syntra_server/services"

	"github.com/gorilla/mux"
)

// NotificationController handles HTTP requests for notifications
type NotificationController struct {
	Notifications *services.NotificationService
	Auth          services.AuthProvider
}

func (c *NotificationController) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	notifications, err := c.Notifications.GetUserNotifications(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (c *NotificationController) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.Notifications.MarkNotificationRead(r.Context(), mux.Vars(r)["notificationId"], userID); err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "Notification marked as read"})
}
