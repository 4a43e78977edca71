package routes

import (
	"syntra_server/controllers"
	"syntra_server/services"

	"github.com/gorilla/mux"
)

// RegisterGroupRoutes registers all group-related routes under /api/groups
func RegisterGroupRoutes(router *mux.Router, membership *services.MembershipService, auth services.AuthProvider) {
	controller := &controllers.GroupController{Membership: membership, Auth: auth}

	groupRouter := router.PathPrefix("/api/groups").Subrouter()
	groupRouter.HandleFunc("", controller.CreateGroupHandler).Methods("POST")
	groupRouter.HandleFunc("", controller.GetUserGroupsHandler).Methods("GET")
	groupRouter.HandleFunc("/{groupId}", controller.GetGroupHandler).Methods("GET")
	groupRouter.HandleFunc("/{groupId}/leave", controller.LeaveGroupHandler).Methods("POST")
	groupRouter.HandleFunc("/{groupId}", controller.DeleteGroupHandler).Methods("DELETE")
}
