package services

import (
	"context"
	"fmt"

	"syntra_server/models"
	"syntra_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FileRecordStore is the persistence surface for file metadata. Records are
// keyed by resolved path; saving to an existing path overwrites the record.
type FileRecordStore interface {
	Save(ctx context.Context, record models.FileRecord) error
	GetByPath(ctx context.Context, filePath string) (models.FileRecord, error)
	GetByID(ctx context.Context, fileID string) (models.FileRecord, error)
	GetAllForUser(ctx context.Context, userID string) ([]models.FileRecord, error)
	Update(ctx context.Context, filePath string, fields map[string]string) error
	Delete(ctx context.Context, filePath string) error
	IncrementDownloadCount(ctx context.Context, filePath string) error
}

// DynamoFileRecordStore persists file metadata in the FileRecords table
type DynamoFileRecordStore struct {
	Dynamo *DynamoService
}

func fileKey(filePath string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"filePath": &types.AttributeValueMemberS{Value: filePath},
	}
}

func (s *DynamoFileRecordStore) Save(ctx context.Context, record models.FileRecord) error {
	return s.Dynamo.PutItem(ctx, record.TableName(), record)
}

func (s *DynamoFileRecordStore) GetByPath(ctx context.Context, filePath string) (models.FileRecord, error) {
	var record models.FileRecord
	item, err := s.Dynamo.GetItem(ctx, record.TableName(), fileKey(filePath))
	if err != nil {
		return record, err
	}
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return record, fmt.Errorf("failed to unmarshal file record: %w", err)
	}
	return record, nil
}

// GetByID resolves a record by its generated id. The table is keyed by path,
// so id lookups scan.
func (s *DynamoFileRecordStore) GetByID(ctx context.Context, fileID string) (models.FileRecord, error) {
	var records []models.FileRecord
	err := s.Dynamo.ScanWithFilter(ctx, models.FileRecord{}.TableName(), func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "id") == fileID
	}, &records)
	if err != nil {
		return models.FileRecord{}, err
	}
	if len(records) == 0 {
		return models.FileRecord{}, ErrNotFound
	}
	return records[0], nil
}

// GetAllForUser returns records the user uploaded or downloaded.
func (s *DynamoFileRecordStore) GetAllForUser(ctx context.Context, userID string) ([]models.FileRecord, error) {
	var records []models.FileRecord
	err := s.Dynamo.ScanWithFilter(ctx, models.FileRecord{}.TableName(), func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "uploadedBy") == userID || utils.ExtractString(item, "downloadedBy") == userID
	}, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update applies a partial string-field update to the record at filePath.
func (s *DynamoFileRecordStore) Update(ctx context.Context, filePath string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	updateExpression := "SET"
	expressionValues := map[string]types.AttributeValue{}
	expressionNames := map[string]string{}
	first := true
	for name, value := range fields {
		if !first {
			updateExpression += ","
		}
		updateExpression += fmt.Sprintf(" #%s = :%s", name, name)
		expressionNames["#"+name] = name
		expressionValues[":"+name] = &types.AttributeValueMemberS{Value: value}
		first = false
	}

	_, err := s.Dynamo.UpdateItem(ctx, models.FileRecord{}.TableName(), updateExpression, fileKey(filePath),
		expressionValues, expressionNames, "attribute_exists(filePath)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *DynamoFileRecordStore) Delete(ctx context.Context, filePath string) error {
	return s.Dynamo.DeleteItem(ctx, models.FileRecord{}.TableName(), fileKey(filePath))
}

// IncrementDownloadCount bumps the counter atomically; concurrent downloads
// cannot lose updates.
func (s *DynamoFileRecordStore) IncrementDownloadCount(ctx context.Context, filePath string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.FileRecord{}.TableName(), "ADD downloadCount :one", fileKey(filePath),
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		}, nil, "attribute_exists(filePath)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
