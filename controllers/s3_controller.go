package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"syntra_server/services"
)

// S3Controller serves presigned URLs for direct-from-browser transfers
type S3Controller struct {
	S3 *services.S3Service
}

// GeneratePresignedURL generates a presigned URL for uploading a shared file
func (c *S3Controller) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName       string `json:"fileName"`
		FileType       string `json:"fileType"`
		StudyGroupName string `json:"studyGroupName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.FileName == "" || payload.FileType == "" || payload.StudyGroupName == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	url, key, err := c.S3.GenerateUploadURL(r.Context(), payload.StudyGroupName, payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		http.Error(w, "Failed to generate pre-signed URL", http.StatusInternalServerError)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL generates a presigned URL for reading a stored file
func (c *S3Controller) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	url, err := c.S3.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		http.Error(w, "Failed to generate read pre-signed URL", http.StatusInternalServerError)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url})
}
