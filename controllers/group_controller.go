package controllers

import (
	"encoding/json"
	"net/http"

	"syntra_server/services"

	"github.com/gorilla/mux"
)

// GroupController handles HTTP requests for study groups
type GroupController struct {
	Membership *services.MembershipService
	Auth       services.AuthProvider
}

func (c *GroupController) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var input services.CreateGroupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	group, err := c.Membership.CreateGroup(r.Context(), input, userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"group": group})
}

func (c *GroupController) GetUserGroupsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	groups, err := c.Membership.GetUserGroups(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

func (c *GroupController) GetGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	group, err := c.Membership.GetGroup(r.Context(), mux.Vars(r)["groupId"], userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"group": group})
}

func (c *GroupController) LeaveGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := c.Membership.LeaveGroup(r.Context(), mux.Vars(r)["groupId"], userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"deleted": result.Deleted,
		"group":   result.Group,
	})
}

func (c *GroupController) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := c.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.Membership.DeleteGroup(r.Context(), mux.Vars(r)["groupId"], userID); err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "Group deleted successfully"})
}
