package routes

import (
	"syntra_server/controllers"
	"syntra_server/services"

	"github.com/gorilla/mux"
)

// RegisterInviteRoutes registers all invite-related routes under /api/invites
func RegisterInviteRoutes(router *mux.Router, membership *services.MembershipService, auth services.AuthProvider) {
	controller := &controllers.InviteController{Membership: membership, Auth: auth}

	inviteRouter := router.PathPrefix("/api/invites").Subrouter()
	inviteRouter.HandleFunc("", controller.SendInviteHandler).Methods("POST")
	inviteRouter.HandleFunc("/pending", controller.GetPendingInvitesHandler).Methods("GET")
	inviteRouter.HandleFunc("/{inviteId}/respond", controller.RespondToInviteHandler).Methods("PUT")
}
