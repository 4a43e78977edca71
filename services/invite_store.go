package services

import (
	"context"
	"fmt"

	"syntra_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// InviteStore is the persistence surface for invites.
type InviteStore interface {
	Put(ctx context.Context, invite models.Invite) error
	Get(ctx context.Context, inviteID string) (models.Invite, error)
	ForInvitee(ctx context.Context, inviteeEmail string) ([]models.Invite, error)
	UpdateStatus(ctx context.Context, inviteID, status, respondedAt string) error
}

// DynamoInviteStore persists invites in the Invites table
type DynamoInviteStore struct {
	Dynamo *DynamoService
}

func inviteKey(inviteID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: inviteID},
	}
}

func (s *DynamoInviteStore) Put(ctx context.Context, invite models.Invite) error {
	return s.Dynamo.PutItem(ctx, invite.TableName(), invite)
}

func (s *DynamoInviteStore) Get(ctx context.Context, inviteID string) (models.Invite, error) {
	var invite models.Invite
	item, err := s.Dynamo.GetItem(ctx, invite.TableName(), inviteKey(inviteID))
	if err != nil {
		return invite, err
	}
	if err := attributevalue.UnmarshalMap(item, &invite); err != nil {
		return invite, fmt.Errorf("failed to unmarshal invite: %w", err)
	}
	return invite, nil
}

// ForInvitee lists invites addressed to inviteeEmail via the InviteeIndex GSI.
func (s *DynamoInviteStore) ForInvitee(ctx context.Context, inviteeEmail string) ([]models.Invite, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.Invite{}.TableName(), models.InviteeIndexName,
		"inviteeEmail = :inviteeEmail",
		map[string]types.AttributeValue{
			":inviteeEmail": &types.AttributeValueMemberS{Value: inviteeEmail},
		}, nil,
	)
	if err != nil {
		return nil, err
	}

	var invites []models.Invite
	if err := attributevalue.UnmarshalListOfMaps(items, &invites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invites: %w", err)
	}
	return invites, nil
}

// UpdateStatus flips a pending invite to a terminal status. The transition is
// conditional on the invite still being pending; a replayed response fails
// with ErrInvalidState.
func (s *DynamoInviteStore) UpdateStatus(ctx context.Context, inviteID, status, respondedAt string) error {
	updateExpression := "SET #s = :status, respondedAt = :respondedAt"
	condition := "#s = :pending"

	_, err := s.Dynamo.UpdateItem(ctx, models.Invite{}.TableName(), updateExpression, inviteKey(inviteID),
		map[string]types.AttributeValue{
			":status":      &types.AttributeValueMemberS{Value: status},
			":respondedAt": &types.AttributeValueMemberS{Value: respondedAt},
			":pending":     &types.AttributeValueMemberS{Value: models.InviteStatusPending},
		},
		map[string]string{"#s": "status"},
		condition,
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrInvalidState
		}
		return err
	}
	return nil
}
