package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"syntra_server/models"

	"github.com/google/uuid"
)

// FileService owns file metadata: upload records, copy-on-download and
// deletion. Bytes go through ObjectStorage for shared files; personal files
// and downloaded copies stay on the user's disk, tracked best-effort in the
// local index.
type FileService struct {
	Files    FileRecordStore
	Storage  ObjectStorage
	Notifier *NotificationService
	Index    *LocalIndex
}

// UploadFileInput carries the client-supplied upload fields.
type UploadFileInput struct {
	FileName       string `json:"fileName"`
	FilePath       string `json:"filePath"`
	StudyGroupName string `json:"studyGroupName"`
	Description    string `json:"description"`
	ClassName      string `json:"className"`
	FileType       string `json:"fileType"`
	FileSize       int64  `json:"fileSize"`
	Content        []byte `json:"content,omitempty"`
}

func defaultFilePath(groupName, fileName string) string {
	return filepath.Join("~", "Syntra", groupName, fileName)
}

// UploadFile creates the file record and, for shared files, stores the bytes
// and fans out notifications to the other group members. The fan-out runs
// synchronously within the request but never fails it.
func (fs *FileService) UploadFile(ctx context.Context, input UploadFileInput, userID string) (models.FileRecord, error) {
	if userID == "" {
		return models.FileRecord{}, fmt.Errorf("%w: user is required", ErrValidation)
	}
	if input.FileName == "" {
		return models.FileRecord{}, fmt.Errorf("%w: fileName is required", ErrValidation)
	}

	groupName := input.StudyGroupName
	if groupName == "" {
		groupName = models.PersonalGroupName
	}
	isPersonal := groupName == models.PersonalGroupName

	filePath := input.FilePath
	if filePath == "" {
		filePath = defaultFilePath(groupName, input.FileName)
	}
	filePath = ExpandHome(filePath)

	now := time.Now().UTC().Format(time.RFC3339)
	record := models.FileRecord{
		FilePath:         filePath,
		ID:               uuid.NewString(),
		FileName:         input.FileName,
		OriginalFileName: input.FileName,
		StudyGroupName:   groupName,
		Description:      input.Description,
		DateCreated:      now,
		ClassName:        input.ClassName,
		FileSize:         input.FileSize,
		FileType:         input.FileType,
		UploadedBy:       userID,
		UploadedAt:       now,
		IsPersonal:       isPersonal,
	}

	if isPersonal {
		record.StorageKey = LocalStorageKey(userID, input.FileName)
	} else {
		record.StorageKey = BuildStorageKey(groupName, input.FileName)
		if len(input.Content) > 0 {
			if err := fs.Storage.PutObject(ctx, record.StorageKey, input.Content, input.FileType); err != nil {
				return models.FileRecord{}, err
			}
		}
	}

	if err := fs.Files.Save(ctx, record); err != nil {
		return models.FileRecord{}, err
	}

	if isPersonal && fs.Index != nil {
		if err := fs.Index.Record(userID, filePath, LocalIndexEntry{
			FileID:         record.ID,
			FileName:       record.FileName,
			StudyGroupName: record.StudyGroupName,
		}); err != nil {
			log.Printf("Failed to update local index for %s: %v", userID, err)
		}
	}

	if !isPersonal && fs.Notifier != nil {
		fs.Notifier.NotifyGroupOnUpload(ctx, record)
	}
	return record, nil
}

// RecordDownload creates the downloader's copy of a shared file and bumps the
// original's download counter. The local-index write is best-effort.
func (fs *FileService) RecordDownload(ctx context.Context, fileID, userID, actualPath string) (models.FileRecord, error) {
	if fileID == "" || userID == "" {
		return models.FileRecord{}, fmt.Errorf("%w: fileId and userId are required", ErrValidation)
	}

	original, err := fs.Files.GetByID(ctx, fileID)
	if err != nil {
		return models.FileRecord{}, err
	}

	downloadPath := actualPath
	if downloadPath == "" {
		downloadPath = filepath.Join("~", "Syntra", "Downloads", original.FileName)
	}
	downloadPath = ExpandHome(downloadPath)

	now := time.Now().UTC().Format(time.RFC3339)
	copyRecord := models.FileRecord{
		FilePath:         downloadPath,
		ID:               uuid.NewString(),
		FileName:         original.FileName,
		OriginalFileName: original.OriginalFileName,
		StorageKey:       LocalStorageKey(userID, original.FileName),
		StudyGroupName:   original.StudyGroupName,
		Description:      original.Description,
		DateCreated:      original.DateCreated,
		ClassName:        original.ClassName,
		FileSize:         original.FileSize,
		FileType:         original.FileType,
		UploadedBy:       original.UploadedBy,
		UploadedAt:       original.UploadedAt,
		IsDownloaded:     true,
		OriginalFileID:   original.ID,
		DownloadedBy:     userID,
		DownloadedAt:     now,
	}

	if err := fs.Files.Save(ctx, copyRecord); err != nil {
		return models.FileRecord{}, err
	}

	if err := fs.Files.IncrementDownloadCount(ctx, original.FilePath); err != nil {
		return models.FileRecord{}, err
	}

	if fs.Index != nil {
		if err := fs.Index.Record(userID, downloadPath, LocalIndexEntry{
			FileID:         copyRecord.ID,
			FileName:       copyRecord.FileName,
			StudyGroupName: copyRecord.StudyGroupName,
			OriginalFileID: original.ID,
			DownloadedAt:   now,
		}); err != nil {
			log.Printf("Failed to update local index for %s: %v", userID, err)
		}
	}
	return copyRecord, nil
}

// GetUserFiles returns records the user uploaded or downloaded.
func (fs *FileService) GetUserFiles(ctx context.Context, userID string) ([]models.FileRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return fs.Files.GetAllForUser(ctx, userID)
}

// GetFileContent fetches a shared file's bytes for the given user. Personal
// files live on their owner's disk and are not served.
func (fs *FileService) GetFileContent(ctx context.Context, fileID, userID string) (models.FileRecord, []byte, error) {
	record, err := fs.Files.GetByID(ctx, fileID)
	if err != nil {
		return models.FileRecord{}, nil, err
	}
	if strings.HasPrefix(record.StorageKey, models.LocalKeyPrefix) {
		return models.FileRecord{}, nil, fmt.Errorf("%w: file is stored locally", ErrNotFound)
	}

	data, err := fs.Storage.GetObject(ctx, record.StorageKey)
	if err != nil {
		return models.FileRecord{}, nil, err
	}
	return record, data, nil
}

// DeleteFile removes a record by path. Only the uploader or the downloader
// of a copy may delete it. Object-store cleanup runs only for records that
// own their bytes; a downloaded copy never deletes the shared object.
func (fs *FileService) DeleteFile(ctx context.Context, filePath, userID string) error {
	if filePath == "" || userID == "" {
		return fmt.Errorf("%w: filePath and userId are required", ErrValidation)
	}
	filePath = ExpandHome(filePath)

	record, err := fs.Files.GetByPath(ctx, filePath)
	if err != nil {
		return err
	}
	if record.UploadedBy != userID && record.DownloadedBy != userID {
		return fmt.Errorf("%s may not delete %s: %w", userID, filePath, ErrAccessDenied)
	}

	if !record.IsDownloaded && !strings.HasPrefix(record.StorageKey, models.LocalKeyPrefix) {
		if err := fs.Storage.DeleteObject(ctx, record.StorageKey); err != nil {
			log.Printf("Failed to delete object %s: %v", record.StorageKey, err)
		}
	}

	if err := fs.Files.Delete(ctx, filePath); err != nil {
		return err
	}

	if fs.Index != nil {
		if err := fs.Index.Remove(userID, filePath); err != nil {
			log.Printf("Failed to update local index for %s: %v", userID, err)
		}
	}
	return nil
}
