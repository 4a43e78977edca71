package routes

import (
	"syntra_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterActionRoutes sets up the single action-dispatch endpoint
func RegisterActionRoutes(r *mux.Router, controller *controllers.ActionController) {
	actionRouter := r.PathPrefix("/api/action").Subrouter()
	actionRouter.HandleFunc("", controller.HandleAction).Methods("POST")
}
