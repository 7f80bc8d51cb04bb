package constants

import "strings"

// SystemTablePrefix is the prefix for all engine-owned tables
const SystemTablePrefix = "_Ops_"

// Table names
const (
	TableOrganization   = "_Ops_Organization"
	TableAccount        = "_Ops_Account"
	TableLibraryEntry   = "_Ops_Library_Entry"
	TableDialectConfig  = "_Ops_Dialect_Config"
	TableOperationType  = "_Ops_Operation_Type"
	TableValidationRule = "_Ops_Validation_Rule"
)

// Common column names
const (
	FieldID               = "id"
	FieldOrganizationID   = "organization_id"
	FieldCategory         = "category"
	FieldCode             = "code"
	FieldName             = "name"
	FieldLabel            = "label"
	FieldKind             = "kind"
	FieldSpec             = "spec"
	FieldIsActive         = "is_active"
	FieldUsageCount       = "usage_count"
	FieldSortOrder        = "sort_order"
	FieldAliases          = "aliases"
	FieldUseAIFallback    = "use_ai_fallback"
	FieldAutoLearn        = "auto_learn"
	FieldCondition        = "condition"
	FieldErrorMessage     = "error_message"
	FieldEmail            = "email"
	FieldPasswordHash     = "password_hash"
	FieldIsAdmin          = "is_admin"
	FieldCreatedDate      = "created_date"
	FieldLastModifiedDate = "last_modified_date"
)

// IsEngineTable checks if a table name belongs to this engine
func IsEngineTable(tableName string) bool {
	return strings.HasPrefix(tableName, SystemTablePrefix)
}
