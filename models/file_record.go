package models

// PersonalGroupName marks files that belong to a single user and never reach
// shared storage or the notification fan-out.
const PersonalGroupName = "Personal"

// LocalKeyPrefix is the sentinel scheme for storage keys of personal files.
// A key of the form "local://{userId}/{fileName}" is never sent to S3.
const LocalKeyPrefix = "local://"

// FileRecord represents file metadata in DynamoDB, keyed by the resolved
// local path. Two uploads to the same path overwrite the same logical record.
// The actual bytes live in S3 (shared files) or on the user's disk (personal
// files and downloaded copies).
type FileRecord struct {
	FilePath         string `dynamodbav:"filePath" json:"filePath"` // Partition Key (PK) - natural key
	ID               string `dynamodbav:"id" json:"id"`
	FileName         string `dynamodbav:"fileName" json:"fileName"`
	OriginalFileName string `dynamodbav:"originalFileName" json:"originalFileName"`
	StorageKey       string `dynamodbav:"storageKey" json:"storageKey"` // S3 key, or local:// sentinel
	StudyGroupName   string `dynamodbav:"studyGroupName" json:"studyGroupName"`
	Description      string `dynamodbav:"description" json:"description"`
	DateCreated      string `dynamodbav:"dateCreated" json:"dateCreated"`
	ClassName        string `dynamodbav:"className" json:"className"`
	FileSize         int64  `dynamodbav:"fileSize" json:"fileSize"`
	FileType         string `dynamodbav:"fileType" json:"fileType"`
	UploadedBy       string `dynamodbav:"uploadedBy" json:"uploadedBy"`
	UploadedAt       string `dynamodbav:"uploadedAt" json:"uploadedAt"`
	DownloadCount    int    `dynamodbav:"downloadCount" json:"downloadCount"`
	IsPersonal       bool   `dynamodbav:"isPersonal" json:"isPersonal"`
	IsDownloaded     bool   `dynamodbav:"isDownloaded" json:"isDownloaded"` // Record is a copy made at download time
	OriginalFileID   string `dynamodbav:"originalFileId" json:"originalFileId"`
	DownloadedBy     string `dynamodbav:"downloadedBy" json:"downloadedBy"`
	DownloadedAt     string `dynamodbav:"downloadedAt" json:"downloadedAt"`
}

// TableName returns the DynamoDB table name for the FileRecord model
func (FileRecord) TableName() string {
	return "FileRecords"
}
