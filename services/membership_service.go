package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"syntra_server/models"

	"github.com/google/uuid"
)

// MembershipService owns the group and invite workflow: creating groups,
// joining and leaving, and the invite lifecycle.
type MembershipService struct {
	Groups  GroupStore
	Invites InviteStore

	// ExposeMissingGroups switches GetGroup's behavior for absent groups
	// from AccessDenied (the information-hiding default) to NotFound.
	ExposeMissingGroups bool
}

// CreateGroupInput carries the client-supplied group fields.
type CreateGroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	University  string `json:"university"`
	ClassName   string `json:"className"`
	MaxMembers  int    `json:"maxMembers"`
	IsPublic    bool   `json:"isPublic"`
}

// LeaveGroupResult reports the outcome of LeaveGroup. Deleted is true when
// the leaving member was the last one and the record was removed.
type LeaveGroupResult struct {
	Group   models.StudyGroup `json:"group"`
	Deleted bool              `json:"deleted"`
}

// RespondToInviteResult carries the terminal invite and, on accept, the
// updated group.
type RespondToInviteResult struct {
	Invite models.Invite      `json:"invite"`
	Group  *models.StudyGroup `json:"group,omitempty"`
}

// CreateGroup creates a study group with the creator as its sole member.
func (ms *MembershipService) CreateGroup(ctx context.Context, input CreateGroupInput, creatorID string) (models.StudyGroup, error) {
	if creatorID == "" {
		return models.StudyGroup{}, fmt.Errorf("%w: creator is required", ErrValidation)
	}
	if input.MaxMembers <= 0 {
		return models.StudyGroup{}, fmt.Errorf("%w: maxMembers must be positive", ErrValidation)
	}

	group := models.StudyGroup{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Subject:     input.Subject,
		University:  input.University,
		ClassName:   input.ClassName,
		MaxMembers:  input.MaxMembers,
		MemberCount: 1,
		Members:     []string{creatorID},
		CreatedBy:   creatorID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		IsActive:    true,
		IsPublic:    input.IsPublic,
	}

	if err := ms.Groups.Create(ctx, group); err != nil {
		return models.StudyGroup{}, err
	}
	return group, nil
}

// GetUserGroups returns every group the user belongs to.
func (ms *MembershipService) GetUserGroups(ctx context.Context, userID string) ([]models.StudyGroup, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return ms.Groups.ForUser(ctx, userID)
}

// GetGroup returns the group iff userID is on its roster. By default a
// missing group is indistinguishable from a membership failure.
func (ms *MembershipService) GetGroup(ctx context.Context, groupID, userID string) (models.StudyGroup, error) {
	if groupID == "" || userID == "" {
		return models.StudyGroup{}, fmt.Errorf("%w: groupId and userId are required", ErrValidation)
	}

	group, err := ms.Groups.Get(ctx, groupID)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !ms.ExposeMissingGroups {
			return models.StudyGroup{}, ErrAccessDenied
		}
		return models.StudyGroup{}, err
	}
	if !group.HasMember(userID) {
		return models.StudyGroup{}, ErrAccessDenied
	}
	return group, nil
}

// LeaveGroup removes userID from the roster. The last member leaving deletes
// the group record entirely.
func (ms *MembershipService) LeaveGroup(ctx context.Context, groupID, userID string) (LeaveGroupResult, error) {
	if groupID == "" || userID == "" {
		return LeaveGroupResult{}, fmt.Errorf("%w: groupId and userId are required", ErrValidation)
	}

	group, err := ms.Groups.Get(ctx, groupID)
	if err != nil {
		return LeaveGroupResult{}, err
	}

	index := group.MemberIndex(userID)
	if index < 0 {
		return LeaveGroupResult{}, fmt.Errorf("%s is not a member of %s: %w", userID, groupID, ErrAccessDenied)
	}

	if group.MemberCount == 1 {
		if err := ms.Groups.Delete(ctx, groupID); err != nil {
			return LeaveGroupResult{}, err
		}
		return LeaveGroupResult{Deleted: true}, nil
	}

	updated, err := ms.Groups.RemoveMemberAt(ctx, groupID, index)
	if err != nil {
		return LeaveGroupResult{}, err
	}
	return LeaveGroupResult{Group: updated}, nil
}

// DeleteGroup removes a group outright. Only the creator may do this.
func (ms *MembershipService) DeleteGroup(ctx context.Context, groupID, userID string) error {
	if groupID == "" || userID == "" {
		return fmt.Errorf("%w: groupId and userId are required", ErrValidation)
	}

	group, err := ms.Groups.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != userID {
		return fmt.Errorf("only the creator may delete a group: %w", ErrAccessDenied)
	}
	return ms.Groups.Delete(ctx, groupID)
}

// SendInvite creates a pending invite after validating the inviter's
// membership, the group's capacity and that the invitee is not already on
// the roster. Repeated invites to the same invitee are allowed.
func (ms *MembershipService) SendInvite(ctx context.Context, groupID, inviterID, inviteeEmail string) (models.Invite, error) {
	if groupID == "" || inviterID == "" || inviteeEmail == "" {
		return models.Invite{}, fmt.Errorf("%w: groupId, inviterId and inviteeEmail are required", ErrValidation)
	}

	group, err := ms.Groups.Get(ctx, groupID)
	if err != nil {
		return models.Invite{}, err
	}
	if !group.HasMember(inviterID) {
		return models.Invite{}, fmt.Errorf("%s is not a member of %s: %w", inviterID, groupID, ErrAccessDenied)
	}
	if group.MemberCount >= group.MaxMembers {
		return models.Invite{}, ErrCapacityExceeded
	}
	if group.HasMember(inviteeEmail) {
		return models.Invite{}, ErrAlreadyMember
	}

	invite := models.Invite{
		ID:           uuid.NewString(),
		GroupID:      group.ID,
		GroupName:    group.Name,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Status:       models.InviteStatusPending,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := ms.Invites.Put(ctx, invite); err != nil {
		return models.Invite{}, err
	}
	return invite, nil
}

// GetPendingInvites lists a user's pending invites.
func (ms *MembershipService) GetPendingInvites(ctx context.Context, userID string) ([]models.Invite, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	invites, err := ms.Invites.ForInvitee(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending := make([]models.Invite, 0, len(invites))
	for _, invite := range invites {
		if invite.Status == models.InviteStatusPending {
			pending = append(pending, invite)
		}
	}
	return pending, nil
}

// RespondToInvite accepts or declines a pending invite. Capacity is
// re-checked at response time; other accepts may have filled the group since
// the invite was sent. The invite transition is terminal.
func (ms *MembershipService) RespondToInvite(ctx context.Context, inviteID, userID, response string) (RespondToInviteResult, error) {
	if inviteID == "" || userID == "" {
		return RespondToInviteResult{}, fmt.Errorf("%w: inviteId and userId are required", ErrValidation)
	}

	var target string
	switch response {
	case "accept", models.InviteStatusAccepted:
		target = models.InviteStatusAccepted
	case "decline", models.InviteStatusDeclined:
		target = models.InviteStatusDeclined
	default:
		return RespondToInviteResult{}, fmt.Errorf("%w: response must be \"accept\" or \"decline\"", ErrValidation)
	}

	invite, err := ms.Invites.Get(ctx, inviteID)
	if err != nil {
		return RespondToInviteResult{}, err
	}
	if invite.InviteeEmail != userID {
		return RespondToInviteResult{}, fmt.Errorf("invite %s is not addressed to %s: %w", inviteID, userID, ErrAccessDenied)
	}
	if invite.Status != models.InviteStatusPending {
		return RespondToInviteResult{}, ErrInvalidState
	}

	respondedAt := time.Now().UTC().Format(time.RFC3339)

	if target == models.InviteStatusDeclined {
		if err := ms.Invites.UpdateStatus(ctx, inviteID, models.InviteStatusDeclined, respondedAt); err != nil {
			return RespondToInviteResult{}, err
		}
		invite.Status = models.InviteStatusDeclined
		invite.RespondedAt = respondedAt
		return RespondToInviteResult{Invite: invite}, nil
	}

	group, err := ms.Groups.Get(ctx, invite.GroupID)
	if err != nil {
		return RespondToInviteResult{}, err
	}
	if group.MemberCount >= group.MaxMembers {
		return RespondToInviteResult{}, ErrCapacityExceeded
	}
	if group.HasMember(userID) {
		return RespondToInviteResult{}, ErrAlreadyMember
	}

	updated, err := ms.Groups.AppendMember(ctx, invite.GroupID, userID)
	if err != nil {
		return RespondToInviteResult{}, err
	}

	if err := ms.Invites.UpdateStatus(ctx, inviteID, models.InviteStatusAccepted, respondedAt); err != nil {
		return RespondToInviteResult{}, err
	}
	invite.Status = models.InviteStatusAccepted
	invite.RespondedAt = respondedAt
	return RespondToInviteResult{Invite: invite, Group: &updated}, nil
}
