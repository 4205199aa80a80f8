package domain

import "time"

// File types recorded on a media item.
const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

type Media struct {
	MediaID    string      `json:"id" dynamodbav:"media_id"`
	UserID     string      `json:"user_id" dynamodbav:"user_id"`
	Kind       string      `json:"-" dynamodbav:"kind"`
	FileName   string      `json:"file_name" dynamodbav:"file_name"`
	ObjectKey  string      `json:"-" dynamodbav:"object_key"`
	FileURL    string      `json:"file_url" dynamodbav:"file_url"`
	FileType   string      `json:"file_type" dynamodbav:"file_type"`
	FileSize   int64       `json:"file_size" dynamodbav:"file_size"`
	MimeType   string      `json:"mime_type" dynamodbav:"mime_type"`
	UploadDate time.Time   `json:"upload_date" dynamodbav:"upload_date"`
	Owner      *MediaOwner `json:"user,omitempty" dynamodbav:"-"`
}

// MediaOwner is the public slice of a user attached to feed items.
type MediaOwner struct {
	UserID   string `json:"id"`
	FullName string `json:"full_name"`
}
