package routes

import (
	"syntra_server/controllers"
	"syntra_server/services"

	"github.com/gorilla/mux"
)

// RegisterFileRoutes registers all file-related routes under /api/files
func RegisterFileRoutes(router *mux.Router, files *services.FileService, notifications *services.NotificationService, auth services.AuthProvider) {
	controller := &controllers.FileController{Files: files, Notifications: notifications, Auth: auth}

	fileRouter := router.PathPrefix("/api/files").Subrouter()
	fileRouter.HandleFunc("", controller.UploadFileHandler).Methods("POST")
	fileRouter.HandleFunc("", controller.GetUserFilesHandler).Methods("GET")
	fileRouter.HandleFunc("", controller.DeleteFileHandler).Methods("DELETE")
	fileRouter.HandleFunc("/{fileId}/download", controller.DownloadFileHandler).Methods("POST")
	fileRouter.HandleFunc("/{fileId}/content", controller.GetFileContentHandler).Methods("GET")
}
