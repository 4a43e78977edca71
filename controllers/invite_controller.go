package controllers

import (
	"encoding/json"
	"net/http"

	"syntra_server/services"

	"github.com/gorilla/mux"
)

// InviteController handles HTTP requests for the invite lifecycle
type InviteController struct {
	Membership *services.MembershipService
	Auth       services.AuthProvider
}

func (c *InviteController) SendInviteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var request struct {
		GroupID      string `json:"groupId"`
		InviteeEmail string `json:"inviteeEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invite, err := c.Membership.SendInvite(r.Context(), request.GroupID, userID, request.InviteeEmail)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"invite": invite})
}

func (c *InviteController) GetPendingInvitesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	invites, err := c.Membership.GetPendingInvites(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"invites": invites})
}

func (c *InviteController) RespondToInviteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var request struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := c.Membership.RespondToInvite(r.Context(), mux.Vars(r)["inviteId"], userID, request.Response)
	if err != nil {
		WriteError(w, err)
		return
	}

	fields := map[string]interface{}{"invite": result.Invite}
	if result.Group != nil {
		fields["group"] = result.Group
	}
	WriteSuccess(w, http.StatusOK, fields)
}
