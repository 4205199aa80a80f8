package dynamo

// DynamoDB attribute and index names shared across repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUserID     = "user_id"
	fieldEmail      = "email"
	fieldPhone      = "phone"
	fieldUpdatedAt  = "updated_at"
	fieldLastLogin  = "last_login"
	fieldMediaID    = "media_id"
	fieldKind       = "kind"
	fieldUploadDate = "upload_date"
	fieldToken      = "token"
	fieldExpiresAt  = "expires_at"

	indexEmail       = "email-index"
	indexPhone       = "phone-index"
	indexUserUploads = "user_id-upload_date-index"
	indexKindUploads = "kind-upload_date-index"
)
