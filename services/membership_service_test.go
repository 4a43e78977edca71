package services

import (
	"context"
	"testing"

	"syntra_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipService() (*MembershipService, *fakeGroupStore, *fakeInviteStore) {
	groups := newFakeGroupStore()
	invites := newFakeInviteStore()
	return &MembershipService{Groups: groups, Invites: invites}, groups, invites
}

func mustCreateGroup(t *testing.T, ms *MembershipService, name, creator string, maxMembers int) models.StudyGroup {
	t.Helper()
	group, err := ms.CreateGroup(context.Background(), CreateGroupInput{
		Name:       name,
		Subject:    "Biology",
		MaxMembers: maxMembers,
	}, creator)
	require.NoError(t, err)
	return group
}

func TestCreateGroup_CreatorIsSoleMember(t *testing.T) {
	ms, _, _ := newMembershipService()

	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	assert.NotEmpty(t, group.ID)
	assert.Equal(t, 1, group.MemberCount)
	assert.Equal(t, []string{"alice@uni.edu"}, group.Members)
	assert.Equal(t, "alice@uni.edu", group.CreatedBy)
	assert.True(t, group.IsActive)
}

func TestCreateGroup_Validation(t *testing.T) {
	ms, _, _ := newMembershipService()

	_, err := ms.CreateGroup(context.Background(), CreateGroupInput{Name: "Bio", MaxMembers: 0}, "alice@uni.edu")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ms.CreateGroup(context.Background(), CreateGroupInput{Name: "Bio", MaxMembers: 5}, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetGroup_MembershipRequired(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	got, err := ms.GetGroup(context.Background(), group.ID, "alice@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)

	_, err = ms.GetGroup(context.Background(), group.ID, "mallory@uni.edu")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetGroup_MissingGroupHiddenByDefault(t *testing.T) {
	ms, _, _ := newMembershipService()

	// Default: a missing group is indistinguishable from a membership failure
	_, err := ms.GetGroup(context.Background(), "no-such-group", "alice@uni.edu")
	assert.ErrorIs(t, err, ErrAccessDenied)

	ms.ExposeMissingGroups = true
	_, err = ms.GetGroup(context.Background(), "no-such-group", "alice@uni.edu")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserGroups(t *testing.T) {
	ms, _, _ := newMembershipService()
	mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	mustCreateGroup(t, ms, "Chem", "alice@uni.edu", 5)
	mustCreateGroup(t, ms, "Math", "bob@uni.edu", 5)

	groups, err := ms.GetUserGroups(context.Background(), "alice@uni.edu")
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	groups, err = ms.GetUserGroups(context.Background(), "carol@uni.edu")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLeaveGroup_LastMemberDeletesGroup(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	result, err := ms.LeaveGroup(context.Background(), group.ID, "alice@uni.edu")
	require.NoError(t, err)
	assert.True(t, result.Deleted)

	// The group is gone; GetGroup behaves as if access were denied
	_, err = ms.GetGroup(context.Background(), group.ID, "alice@uni.edu")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLeaveGroup_RemovesMemberAndDecrementsCount(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	_, err := groups.AppendMember(context.Background(), group.ID, "bob@uni.edu")
	require.NoError(t, err)

	result, err := ms.LeaveGroup(context.Background(), group.ID, "alice@uni.edu")
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Equal(t, 1, result.Group.MemberCount)
	assert.Equal(t, []string{"bob@uni.edu"}, result.Group.Members)
}

func TestLeaveGroup_NotAMember(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	_, err := ms.LeaveGroup(context.Background(), group.ID, "mallory@uni.edu")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteGroup_CreatorOnly(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	_, err := groups.AppendMember(context.Background(), group.ID, "bob@uni.edu")
	require.NoError(t, err)

	err = ms.DeleteGroup(context.Background(), group.ID, "bob@uni.edu")
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = ms.DeleteGroup(context.Background(), group.ID, "alice@uni.edu")
	require.NoError(t, err)

	_, err = groups.Get(context.Background(), group.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendInvite(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	invite, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, invite.Status)
	assert.Equal(t, group.ID, invite.GroupID)
	assert.Equal(t, "Bio", invite.GroupName)
	assert.Equal(t, "bob@uni.edu", invite.InviteeEmail)
	assert.NotEmpty(t, invite.CreatedAt)
	assert.Empty(t, invite.RespondedAt)
}

func TestSendInvite_NotAMember(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	_, err := ms.SendInvite(context.Background(), group.ID, "mallory@uni.edu", "bob@uni.edu")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSendInvite_InviteeAlreadyMember(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	_, err := groups.AppendMember(context.Background(), group.ID, "bob@uni.edu")
	require.NoError(t, err)

	_, err = ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestSendInvite_AtCapacityCreatesNoInvite(t *testing.T) {
	ms, _, invites := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 1)

	_, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, invites.invites)
}

func TestSendInvite_RepeatedInvitesAllowed(t *testing.T) {
	ms, _, invites := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	_, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)
	_, err = ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)
	assert.Len(t, invites.invites, 2)
}

func TestRespondToInvite_Accept(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	invite, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)

	result, err := ms.RespondToInvite(context.Background(), invite.ID, "bob@uni.edu", models.InviteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusAccepted, result.Invite.Status)
	assert.NotEmpty(t, result.Invite.RespondedAt)
	require.NotNil(t, result.Group)
	assert.Equal(t, 2, result.Group.MemberCount)
	assert.Contains(t, result.Group.Members, "bob@uni.edu")

	updated, err := groups.Get(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MemberCount)

	// The transition is terminal: a second response fails
	_, err = ms.RespondToInvite(context.Background(), invite.ID, "bob@uni.edu", models.InviteStatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRespondToInvite_DeclineLeavesGroupUntouched(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	invite, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)

	result, err := ms.RespondToInvite(context.Background(), invite.ID, "bob@uni.edu", models.InviteStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusDeclined, result.Invite.Status)
	assert.Nil(t, result.Group)

	unchanged, err := groups.Get(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unchanged.MemberCount)
	assert.Equal(t, []string{"alice@uni.edu"}, unchanged.Members)
}

func TestRespondToInvite_WrongInvitee(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	invite, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)

	_, err = ms.RespondToInvite(context.Background(), invite.ID, "mallory@uni.edu", models.InviteStatusAccepted)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRespondToInvite_GroupGone(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	invite, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)

	require.NoError(t, groups.Delete(context.Background(), group.ID))

	_, err = ms.RespondToInvite(context.Background(), invite.ID, "bob@uni.edu", models.InviteStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondToInvite_InvalidResponse(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)
	invite, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)

	_, err = ms.RespondToInvite(context.Background(), invite.ID, "bob@uni.edu", "maybe")
	assert.ErrorIs(t, err, ErrValidation)
}

// Capacity is re-checked at response time: a group of two fills up after the
// first accept, and the second accept fails without mutating the roster.
func TestRespondToInvite_CapacityRecheckedAtResponseTime(t *testing.T) {
	ms, groups, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 2)

	inviteB, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)
	inviteC, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "carol@uni.edu")
	require.NoError(t, err)

	result, err := ms.RespondToInvite(context.Background(), inviteB.ID, "bob@uni.edu", models.InviteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Group.MemberCount)

	_, err = ms.RespondToInvite(context.Background(), inviteC.ID, "carol@uni.edu", models.InviteStatusAccepted)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	unchanged, err := groups.Get(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@uni.edu", "bob@uni.edu"}, unchanged.Members)
	assert.Equal(t, 2, unchanged.MemberCount)
}

func TestGetPendingInvites_FiltersTerminalStates(t *testing.T) {
	ms, _, _ := newMembershipService()
	group := mustCreateGroup(t, ms, "Bio", "alice@uni.edu", 5)

	first, err := ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)
	_, err = ms.SendInvite(context.Background(), group.ID, "alice@uni.edu", "bob@uni.edu")
	require.NoError(t, err)

	_, err = ms.RespondToInvite(context.Background(), first.ID, "bob@uni.edu", models.InviteStatusDeclined)
	require.NoError(t, err)

	pending, err := ms.GetPendingInvites(context.Background(), "bob@uni.edu")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, models.InviteStatusPending, pending[0].Status)
}
