package models

// Invite Status Constants
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// Invite represents a pending offer of membership tied to one group and one
// invitee. Multiple invites to the same invitee for the same group are
// permitted; there is no uniqueness constraint.
type Invite struct {
	ID           string `dynamodbav:"id" json:"id"`                     // Partition Key (PK)
	GroupID      string `dynamodbav:"groupId" json:"groupId"`           // Weak reference to StudyGroup
	GroupName    string `dynamodbav:"groupName" json:"groupName"`       // Denormalized snapshot at send time
	InviterID    string `dynamodbav:"inviterId" json:"inviterId"`       // Member who sent the invite
	InviteeEmail string `dynamodbav:"inviteeEmail" json:"inviteeEmail"` // GSI InviteeIndex hash key
	Status       string `dynamodbav:"status" json:"status"`             // "pending", "accepted", "declined"
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`       // RFC3339
	RespondedAt  string `dynamodbav:"respondedAt" json:"respondedAt"`   // Set on accept/decline
}

// TableName returns the DynamoDB table name for the Invite model
func (Invite) TableName() string {
	return "Invites"
}

// InviteeIndexName is the GSI used to list invites addressed to a user.
const InviteeIndexName = "InviteeIndex"
