package services

import (
	"context"
	"fmt"

	"syntra_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NotificationStore is the persistence surface for notifications.
type NotificationStore interface {
	Put(ctx context.Context, notification models.Notification) error
	Get(ctx context.Context, notificationID string) (models.Notification, error)
	ForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// DynamoNotificationStore persists notifications in the Notifications table
type DynamoNotificationStore struct {
	Dynamo *DynamoService
}

func notificationKey(notificationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: notificationID},
	}
}

func (s *DynamoNotificationStore) Put(ctx context.Context, notification models.Notification) error {
	return s.Dynamo.PutItem(ctx, notification.TableName(), notification)
}

func (s *DynamoNotificationStore) Get(ctx context.Context, notificationID string) (models.Notification, error) {
	var notification models.Notification
	item, err := s.Dynamo.GetItem(ctx, notification.TableName(), notificationKey(notificationID))
	if err != nil {
		return notification, err
	}
	if err := attributevalue.UnmarshalMap(item, &notification); err != nil {
		return notification, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return notification, nil
}

// ForUser lists a user's notifications via the UserIndex GSI.
func (s *DynamoNotificationStore) ForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.Notification{}.TableName(), models.UserIndexName,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		}, nil,
	)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}
	return notifications, nil
}

func (s *DynamoNotificationStore) MarkRead(ctx context.Context, notificationID string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.Notification{}.TableName(), "SET #s = :read", notificationKey(notificationID),
		map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberS{Value: models.NotificationStatusRead},
		},
		map[string]string{"#s": "status"},
		"",
	)
	return err
}
