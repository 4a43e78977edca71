package services

import (
	"context"
	"fmt"

	"syntra_server/models"
)

// In-memory store fakes implementing the same contracts as the Dynamo-backed
// stores, including the conditional-write semantics.

type fakeGroupStore struct {
	groups map[string]models.StudyGroup
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: map[string]models.StudyGroup{}}
}

func (s *fakeGroupStore) Create(ctx context.Context, group models.StudyGroup) error {
	if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("group id %s: %w", group.ID, ErrConflict)
	}
	s.groups[group.ID] = group
	return nil
}

func (s *fakeGroupStore) Get(ctx context.Context, groupID string) (models.StudyGroup, error) {
	group, exists := s.groups[groupID]
	if !exists {
		return models.StudyGroup{}, ErrNotFound
	}
	return group, nil
}

func (s *fakeGroupStore) GetByName(ctx context.Context, name string) (models.StudyGroup, error) {
	for _, group := range s.groups {
		if group.Name == name {
			return group, nil
		}
	}
	return models.StudyGroup{}, ErrNotFound
}

func (s *fakeGroupStore) ForUser(ctx context.Context, userID string) ([]models.StudyGroup, error) {
	var result []models.StudyGroup
	for _, group := range s.groups {
		if group.HasMember(userID) {
			result = append(result, group)
		}
	}
	return result, nil
}

func (s *fakeGroupStore) AppendMember(ctx context.Context, groupID, userID string) (models.StudyGroup, error) {
	group, exists := s.groups[groupID]
	if !exists {
		return models.StudyGroup{}, ErrNotFound
	}
	if group.MemberCount >= group.MaxMembers || group.HasMember(userID) {
		return models.StudyGroup{}, ErrCapacityExceeded
	}
	group.Members = append(append([]string{}, group.Members...), userID)
	group.MemberCount++
	s.groups[groupID] = group
	return group, nil
}

func (s *fakeGroupStore) RemoveMemberAt(ctx context.Context, groupID string, index int) (models.StudyGroup, error) {
	group, exists := s.groups[groupID]
	if !exists {
		return models.StudyGroup{}, ErrNotFound
	}
	if index < 0 || index >= len(group.Members) {
		return models.StudyGroup{}, fmt.Errorf("index %d out of range", index)
	}
	members := append([]string{}, group.Members...)
	group.Members = append(members[:index], members[index+1:]...)
	group.MemberCount--
	s.groups[groupID] = group
	return group, nil
}

func (s *fakeGroupStore) Delete(ctx context.Context, groupID string) error {
	delete(s.groups, groupID)
	return nil
}

type fakeInviteStore struct {
	invites map[string]models.Invite
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{invites: map[string]models.Invite{}}
}

func (s *fakeInviteStore) Put(ctx context.Context, invite models.Invite) error {
	s.invites[invite.ID] = invite
	return nil
}

func (s *fakeInviteStore) Get(ctx context.Context, inviteID string) (models.Invite, error) {
	invite, exists := s.invites[inviteID]
	if !exists {
		return models.Invite{}, ErrNotFound
	}
	return invite, nil
}

func (s *fakeInviteStore) ForInvitee(ctx context.Context, inviteeEmail string) ([]models.Invite, error) {
	var result []models.Invite
	for _, invite := range s.invites {
		if invite.InviteeEmail == inviteeEmail {
			result = append(result, invite)
		}
	}
	return result, nil
}

func (s *fakeInviteStore) UpdateStatus(ctx context.Context, inviteID, status, respondedAt string) error {
	invite, exists := s.invites[inviteID]
	if !exists {
		return ErrNotFound
	}
	if invite.Status != models.InviteStatusPending {
		return ErrInvalidState
	}
	invite.Status = status
	invite.RespondedAt = respondedAt
	s.invites[inviteID] = invite
	return nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
	failFor       map[string]bool
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{failFor: map[string]bool{}}
}

func (s *fakeNotificationStore) Put(ctx context.Context, notification models.Notification) error {
	if s.failFor[notification.UserID] {
		return ErrStoreUnavailable
	}
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *fakeNotificationStore) Get(ctx context.Context, notificationID string) (models.Notification, error) {
	for _, n := range s.notifications {
		if n.ID == notificationID {
			return n, nil
		}
	}
	return models.Notification{}, ErrNotFound
}

func (s *fakeNotificationStore) ForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var result []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *fakeNotificationStore) MarkRead(ctx context.Context, notificationID string) error {
	for i, n := range s.notifications {
		if n.ID == notificationID {
			s.notifications[i].Status = models.NotificationStatusRead
			return nil
		}
	}
	return ErrNotFound
}

type fakeFileStore struct {
	records map[string]models.FileRecord
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{records: map[string]models.FileRecord{}}
}

func (s *fakeFileStore) Save(ctx context.Context, record models.FileRecord) error {
	s.records[record.FilePath] = record
	return nil
}

func (s *fakeFileStore) GetByPath(ctx context.Context, filePath string) (models.FileRecord, error) {
	record, exists := s.records[filePath]
	if !exists {
		return models.FileRecord{}, ErrNotFound
	}
	return record, nil
}

func (s *fakeFileStore) GetByID(ctx context.Context, fileID string) (models.FileRecord, error) {
	for _, record := range s.records {
		if record.ID == fileID {
			return record, nil
		}
	}
	return models.FileRecord{}, ErrNotFound
}

func (s *fakeFileStore) GetAllForUser(ctx context.Context, userID string) ([]models.FileRecord, error) {
	var result []models.FileRecord
	for _, record := range s.records {
		if record.UploadedBy == userID || record.DownloadedBy == userID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (s *fakeFileStore) Update(ctx context.Context, filePath string, fields map[string]string) error {
	if _, exists := s.records[filePath]; !exists {
		return ErrNotFound
	}
	return nil
}

func (s *fakeFileStore) Delete(ctx context.Context, filePath string) error {
	delete(s.records, filePath)
	return nil
}

func (s *fakeFileStore) IncrementDownloadCount(ctx context.Context, filePath string) error {
	record, exists := s.records[filePath]
	if !exists {
		return ErrNotFound
	}
	record.DownloadCount++
	s.records[filePath] = record
	return nil
}

type fakeObjectStorage struct {
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (s *fakeObjectStorage) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	data, exists := s.objects[key]
	if !exists {
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *fakeObjectStorage) DeleteObject(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type recordingPusher struct {
	pushed []models.Notification
}

func (p *recordingPusher) PushNotification(userID string, notification models.Notification) {
	p.pushed = append(p.pushed, notification)
}
