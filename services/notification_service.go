package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"syntra_server/models"

	"github.com/google/uuid"
)

// NotificationPusher delivers a freshly written notification to a connected
// recipient. Implemented by the socket hub; nil disables pushes.
type NotificationPusher interface {
	PushNotification(userID string, notification models.Notification)
}

// NotificationService owns the upload fan-out and the per-user notification
// lifecycle.
type NotificationService struct {
	Groups        GroupStore
	Notifications NotificationStore
	Pusher        NotificationPusher
}

// NotifyGroupOnUpload writes one notification per group member other than
// the uploader. The whole operation is fire-and-forget: a missing group, an
// empty roster or a failed write is logged and never surfaced to the upload
// request. Writes are sequential and independent; a failure does not roll
// back notifications already written.
func (ns *NotificationService) NotifyGroupOnUpload(ctx context.Context, record models.FileRecord) {
	if record.StudyGroupName == models.PersonalGroupName {
		return
	}

	group, err := ns.Groups.GetByName(ctx, record.StudyGroupName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("No group named %q found, skipping notification fan-out", record.StudyGroupName)
		} else {
			log.Printf("Failed to resolve group %q for fan-out: %v", record.StudyGroupName, err)
		}
		return
	}
	if len(group.Members) == 0 {
		log.Printf("Group %q has no members, skipping notification fan-out", group.Name)
		return
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	for _, member := range group.Members {
		if member == record.UploadedBy {
			continue
		}

		notification := models.Notification{
			ID:             uuid.NewString(),
			UserID:         member,
			Type:           models.NotificationTypeFileShared,
			Title:          fmt.Sprintf("New file: %s", record.FileName),
			Message:        fmt.Sprintf("%s shared %s in %s", record.UploadedBy, record.FileName, group.Name),
			FileID:         record.ID,
			StudyGroupName: group.Name,
			Status:         models.NotificationStatusUnread,
			CreatedAt:      createdAt,
		}

		if err := ns.Notifications.Put(ctx, notification); err != nil {
			log.Printf("Failed to write notification for %s: %v", member, err)
			continue
		}
		if ns.Pusher != nil {
			ns.Pusher.PushNotification(member, notification)
		}
	}
}

// GetUserNotifications lists a user's notifications.
func (ns *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return ns.Notifications.ForUser(ctx, userID)
}

// MarkNotificationRead flips a notification to read. Only the recipient may
// do this.
func (ns *NotificationService) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	if notificationID == "" || userID == "" {
		return fmt.Errorf("%w: notificationId and userId are required", ErrValidation)
	}

	notification, err := ns.Notifications.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return fmt.Errorf("notification %s does not belong to %s: %w", notificationID, userID, ErrAccessDenied)
	}
	return ns.Notifications.MarkRead(ctx, notificationID)
}
