package models

// StudyGroup represents a study group and its member roster in DynamoDB
type StudyGroup struct {
	ID          string   `dynamodbav:"id" json:"id"`                   // Partition Key (PK) - generated at creation
	Name        string   `dynamodbav:"name" json:"name"`               // Display name, also referenced by file records
	Description string   `dynamodbav:"description" json:"description"` //
	Subject     string   `dynamodbav:"subject" json:"subject"`         //
	University  string   `dynamodbav:"university" json:"university"`   //
	ClassName   string   `dynamodbav:"className" json:"className"`     //
	MaxMembers  int      `dynamodbav:"maxMembers" json:"maxMembers"`   // Capacity cap
	MemberCount int      `dynamodbav:"memberCount" json:"memberCount"` // Must equal len(Members)
	Members     []string `dynamodbav:"members" json:"members"`         // Ordered list of member ids (emails)
	CreatedBy   string   `dynamodbav:"createdBy" json:"createdBy"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"` // RFC3339
	IsActive    bool     `dynamodbav:"isActive" json:"isActive"`
	IsPublic    bool     `dynamodbav:"isPublic" json:"isPublic"`
}

// HasMember reports whether userID is on the roster.
func (g StudyGroup) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// MemberIndex returns the index of the first occurrence of userID in the
// roster, or -1 if absent. Removal is positional by first match.
func (g StudyGroup) MemberIndex(userID string) int {
	for i, m := range g.Members {
		if m == userID {
			return i
		}
	}
	return -1
}

// TableName returns the DynamoDB table name for the StudyGroup model
func (StudyGroup) TableName() string {
	return "StudyGroups"
}
