package routes

import (
	"syntra_server/controllers"
	"syntra_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes registers notification routes under /api/notifications
func RegisterNotificationRoutes(router *mux.Router, notifications *services.NotificationService, auth services.AuthProvider) {
	controller := &controllers.NotificationController{Notifications: notifications, Auth: auth}

	notificationRouter := router.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("", controller.GetNotificationsHandler).Methods("GET")
	notificationRouter.HandleFunc("/{notificationId}/read", controller.MarkReadHandler).Methods("PUT")
}
