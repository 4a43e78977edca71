package routes

import (
	"syntra_server/controllers"
	"syntra_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for S3-related operations
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	controller := &controllers.S3Controller{S3: s3Service}

	r.HandleFunc("/generate-presigned-url", controller.GeneratePresignedURL).Methods("POST")
	r.HandleFunc("/get-presigned-read-url", controller.GetPresignedReadURL).Methods("POST")
}
