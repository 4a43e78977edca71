package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"syntra_server/services"
)

// ActionController is the single action-dispatch endpoint: requests carry an
// action tag and a data payload, and responses carry a success flag.
type ActionController struct {
	Membership    *services.MembershipService
	Files         *services.FileService
	Notifications *services.NotificationService
	Auth          services.AuthProvider
}

// NewActionController creates a new ActionController instance
func NewActionController(membership *services.MembershipService, files *services.FileService, notifications *services.NotificationService, auth services.AuthProvider) *ActionController {
	return &ActionController{
		Membership:    membership,
		Files:         files,
		Notifications: notifications,
		Auth:          auth,
	}
}

// HandleAction dispatches an {action, data} request to the matching workflow
// operation.
func (ac *ActionController) HandleAction(w http.ResponseWriter, r *http.Request) {
	userID, err := ac.Auth.UserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var request struct {
		Action string          `json:"action"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Action == "" {
		WriteError(w, fmt.Errorf("%w: action is required", services.ErrValidation))
		return
	}

	result, err := ac.dispatch(r, userID, request.Action, request.Data)
	if err != nil {
		log.Printf("Action %q failed for %s: %v", request.Action, userID, err)
		WriteError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, result)
}

func (ac *ActionController) dispatch(r *http.Request, userID, action string, data json.RawMessage) (map[string]interface{}, error) {
	ctx := r.Context()

	decode := func(v interface{}) error {
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: malformed data payload", services.ErrValidation)
		}
		return nil
	}

	switch action {
	case "createGroup":
		var input services.CreateGroupInput
		if err := decode(&input); err != nil {
			return nil, err
		}
		group, err := ac.Membership.CreateGroup(ctx, input, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"group": group}, nil

	case "getUserGroups":
		groups, err := ac.Membership.GetUserGroups(ctx, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"groups": groups}, nil

	case "getGroup":
		var payload struct {
			GroupID string `json:"groupId"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		group, err := ac.Membership.GetGroup(ctx, payload.GroupID, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"group": group}, nil

	case "leaveGroup":
		var payload struct {
			GroupID string `json:"groupId"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		result, err := ac.Membership.LeaveGroup(ctx, payload.GroupID, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"deleted": result.Deleted, "group": result.Group}, nil

	case "deleteGroup":
		var payload struct {
			GroupID string `json:"groupId"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		if err := ac.Membership.DeleteGroup(ctx, payload.GroupID, userID); err != nil {
			return nil, err
		}
		return map[string]interface{}{"message": "Group deleted successfully"}, nil

	case "sendInvite":
		var payload struct {
			GroupID      string `json:"groupId"`
			InviteeEmail string `json:"inviteeEmail"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		invite, err := ac.Membership.SendInvite(ctx, payload.GroupID, userID, payload.InviteeEmail)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"invite": invite}, nil

	case "getPendingInvites":
		invites, err := ac.Membership.GetPendingInvites(ctx, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"invites": invites}, nil

	case "respondToInvite":
		var payload struct {
			InviteID string `json:"inviteId"`
			Response string `json:"response"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		result, err := ac.Membership.RespondToInvite(ctx, payload.InviteID, userID, payload.Response)
		if err != nil {
			return nil, err
		}
		fields := map[string]interface{}{"invite": result.Invite}
		if result.Group != nil {
			fields["group"] = result.Group
		}
		return fields, nil

	case "uploadFile":
		var input services.UploadFileInput
		if err := decode(&input); err != nil {
			return nil, err
		}
		record, err := ac.Files.UploadFile(ctx, input, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"file": record}, nil

	case "downloadFile":
		var payload struct {
			FileID         string `json:"fileId"`
			FilePath       string `json:"filePath"`
			NotificationID string `json:"notificationId"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		record, err := ac.Files.RecordDownload(ctx, payload.FileID, userID, payload.FilePath)
		if err != nil {
			return nil, err
		}
		if payload.NotificationID != "" {
			if err := ac.Notifications.MarkNotificationRead(ctx, payload.NotificationID, userID); err != nil {
				log.Printf("Failed to mark notification %s read: %v", payload.NotificationID, err)
			}
		}
		return map[string]interface{}{"file": record}, nil

	case "getUserFiles":
		files, err := ac.Files.GetUserFiles(ctx, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"files": files}, nil

	case "deleteFile":
		var payload struct {
			FilePath string `json:"filePath"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		if err := ac.Files.DeleteFile(ctx, payload.FilePath, userID); err != nil {
			return nil, err
		}
		return map[string]interface{}{"message": "File deleted successfully"}, nil

	case "getNotifications":
		notifications, err := ac.Notifications.GetUserNotifications(ctx, userID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"notifications": notifications}, nil

	case "markNotificationRead":
		var payload struct {
			NotificationID string `json:"notificationId"`
		}
		if err := decode(&payload); err != nil {
			return nil, err
		}
		if err := ac.Notifications.MarkNotificationRead(ctx, payload.NotificationID, userID); err != nil {
			return nil, err
		}
		return map[string]interface{}{"message": "Notification marked as read"}, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", services.ErrValidation, action)
	}
}
