package services

import (
	"context"
	"fmt"

	"syntra_server/models"
	"syntra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GroupStore is the persistence surface for study groups. The production
// implementation is DynamoGroupStore; tests use an in-memory fake.
type GroupStore interface {
	Create(ctx context.Context, group models.StudyGroup) error
	Get(ctx context.Context, groupID string) (models.StudyGroup, error)
	GetByName(ctx context.Context, name string) (models.StudyGroup, error)
	ForUser(ctx context.Context, userID string) ([]models.StudyGroup, error)
	AppendMember(ctx context.Context, groupID, userID string) (models.StudyGroup, error)
	RemoveMemberAt(ctx context.Context, groupID string, index int) (models.StudyGroup, error)
	Delete(ctx context.Context, groupID string) error
}

// DynamoGroupStore persists study groups in the StudyGroups table
type DynamoGroupStore struct {
	Dynamo *DynamoService
}

func groupKey(groupID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: groupID},
	}
}

// Create writes a new group, rejecting id collisions.
func (s *DynamoGroupStore) Create(ctx context.Context, group models.StudyGroup) error {
	err := s.Dynamo.PutItemWithCondition(ctx, group.TableName(), group, "attribute_not_exists(id)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return fmt.Errorf("group id %s: %w", group.ID, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *DynamoGroupStore) Get(ctx context.Context, groupID string) (models.StudyGroup, error) {
	var group models.StudyGroup
	item, err := s.Dynamo.GetItem(ctx, group.TableName(), groupKey(groupID))
	if err != nil {
		return group, err
	}
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return group, fmt.Errorf("failed to unmarshal group: %w", err)
	}
	return group, nil
}

// GetByName resolves a group by its display name. Names are not unique; the
// first match wins.
func (s *DynamoGroupStore) GetByName(ctx context.Context, name string) (models.StudyGroup, error) {
	var groups []models.StudyGroup
	err := s.Dynamo.ScanWithFilter(ctx, models.StudyGroup{}.TableName(), func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "name") == name
	}, &groups)
	if err != nil {
		return models.StudyGroup{}, err
	}
	if len(groups) == 0 {
		return models.StudyGroup{}, ErrNotFound
	}
	return groups[0], nil
}

// ForUser returns every group whose roster contains userID.
func (s *DynamoGroupStore) ForUser(ctx context.Context, userID string) ([]models.StudyGroup, error) {
	var groups []models.StudyGroup
	err := s.Dynamo.ScanWithFilter(ctx, models.StudyGroup{}.TableName(), func(item map[string]types.AttributeValue) bool {
		return utils.ListContainsString(item, "members", userID)
	}, &groups)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// AppendMember adds userID to the roster and bumps memberCount in one
// conditional write, so concurrent accepts cannot overshoot maxMembers. A
// rejected condition surfaces as ErrCapacityExceeded; callers that need to
// distinguish duplicate membership check the roster before calling.
func (s *DynamoGroupStore) AppendMember(ctx context.Context, groupID, userID string) (models.StudyGroup, error) {
	updateExpression := "SET members = list_append(members, :newMember), memberCount = memberCount + :one"
	condition := "memberCount < maxMembers AND NOT contains(members, :member)"

	attrs, err := s.Dynamo.UpdateItem(ctx, models.StudyGroup{}.TableName(), updateExpression, groupKey(groupID),
		map[string]types.AttributeValue{
			":newMember": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: userID},
			}},
			":member": &types.AttributeValueMemberS{Value: userID},
			":one":    &types.AttributeValueMemberN{Value: "1"},
		}, nil, condition,
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return models.StudyGroup{}, ErrCapacityExceeded
		}
		return models.StudyGroup{}, err
	}

	var group models.StudyGroup
	if err := attributevalue.UnmarshalMap(attrs, &group); err != nil {
		return group, fmt.Errorf("failed to unmarshal updated group: %w", err)
	}
	return group, nil
}

// RemoveMemberAt removes the roster entry at index and decrements
// memberCount. Removal is positional so a duplicated id loses one occurrence.
func (s *DynamoGroupStore) RemoveMemberAt(ctx context.Context, groupID string, index int) (models.StudyGroup, error) {
	updateExpression := fmt.Sprintf("SET memberCount = memberCount - :one REMOVE members[%d]", index)

	attrs, err := s.Dynamo.UpdateItem(ctx, models.StudyGroup{}.TableName(), updateExpression, groupKey(groupID),
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		}, nil, "",
	)
	if err != nil {
		return models.StudyGroup{}, err
	}

	var group models.StudyGroup
	if err := attributevalue.UnmarshalMap(attrs, &group); err != nil {
		return group, fmt.Errorf("failed to unmarshal updated group: %w", err)
	}
	return group, nil
}

func (s *DynamoGroupStore) Delete(ctx context.Context, groupID string) error {
	return s.Dynamo.DeleteItem(ctx, models.StudyGroup{}.TableName(), groupKey(groupID))
}
