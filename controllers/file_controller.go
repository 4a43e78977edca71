package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"syntra_server/services"

	"github.com/gorilla/mux"
)

// FileController handles HTTP requests for file records
type FileController struct {
	Files         *services.FileService
	Notifications *services.NotificationService
	Auth          services.AuthProvider
}

func (c *FileController) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var input services.UploadFileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := c.Files.UploadFile(r.Context(), input, userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"file": record})
}

func (c *FileController) GetUserFilesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	files, err := c.Files.GetUserFiles(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"files": files})
}

// DownloadFileHandler records the caller's copy of a shared file. When the
// download came through a notification, that notification is marked read,
// best-effort.
func (c *FileController) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var request struct {
		FilePath       string `json:"filePath"`
		NotificationID string `json:"notificationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := c.Files.RecordDownload(r.Context(), mux.Vars(r)["fileId"], userID, request.FilePath)
	if err != nil {
		WriteError(w, err)
		return
	}

	if request.NotificationID != "" {
		if err := c.Notifications.MarkNotificationRead(r.Context(), request.NotificationID, userID); err != nil {
			log.Printf("Failed to mark notification %s read: %v", request.NotificationID, err)
		}
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"file": record})
}

func (c *FileController) GetFileContentHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	record, data, err := c.Files.GetFileContent(r.Context(), mux.Vars(r)["fileId"], userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", record.FileType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+record.FileName+"\"")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (c *FileController) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	filePath := r.URL.Query().Get("path")
	if err := c.Files.DeleteFile(r.Context(), filePath, userID); err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "File deleted successfully"})
}
