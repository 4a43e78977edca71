package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ListContainsString reports whether the list attribute holds value
func ListContainsString(item map[string]types.AttributeValue, field, value string) bool {
	if attr, ok := item[field]; ok {
		if list, ok := attr.(*types.AttributeValueMemberL); ok {
			for _, entry := range list.Value {
				if v, ok := entry.(*types.AttributeValueMemberS); ok && v.Value == value {
					return true
				}
			}
		}
	}
	return false
}
