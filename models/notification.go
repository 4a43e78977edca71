package models

// Notification Status Constants
const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)

// NotificationTypeFileShared is the type written by the upload fan-out.
const NotificationTypeFileShared = "file_shared"

// Notification represents a per-user notification record in DynamoDB
type Notification struct {
	ID             string `dynamodbav:"id" json:"id"`         // Partition Key (PK)
	UserID         string `dynamodbav:"userId" json:"userId"` // Recipient, GSI UserIndex hash key
	Type           string `dynamodbav:"type" json:"type"`
	Title          string `dynamodbav:"title" json:"title"`
	Message        string `dynamodbav:"message" json:"message"`
	FileID         string `dynamodbav:"fileId" json:"fileId"` // Weak reference to FileRecord
	StudyGroupName string `dynamodbav:"studyGroupName" json:"studyGroupName"`
	Status         string `dynamodbav:"status" json:"status"` // "unread", "read"
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// TableName returns the DynamoDB table name for the Notification model
func (Notification) TableName() string {
	return "Notifications"
}

// UserIndexName is the GSI used to list a user's notifications.
const UserIndexName = "UserIndex"
