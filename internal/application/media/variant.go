package media

import (
	"path"

	"github.com/homefix-api/internal/domain"
)

// Variant describes one upload surface: which files it accepts, where the
// objects go and the messages its clients see.
type Variant struct {
	Kind      string // stored on every record; partitions the feed index
	FormField string
	MaxBytes  int64

	// Extensions maps an allowed lowercase extension to the recorded file type.
	Extensions map[string]string
	// MIMETypes lists the sniffed content types accepted for upload.
	MIMETypes []string

	MsgNoFile       string
	MsgBadType      string
	MsgUploadFailed string
	MsgSaveFailed   string
	MsgNotFound     string
	MsgUploaded     string
	MsgDeleted      string

	objectKey func(userID, fileName, fileType string) string
}

// ObjectKey returns the storage key for a stored file name.
func (v Variant) ObjectKey(userID, fileName, fileType string) string {
	return v.objectKey(userID, fileName, fileType)
}

var imageExtensions = map[string]string{
	".jpeg": domain.FileTypeImage,
	".jpg":  domain.FileTypeImage,
	".png":  domain.FileTypeImage,
	".gif":  domain.FileTypeImage,
}

var imageMIMETypes = []string{"image/jpeg", "image/png", "image/gif"}

// MediaVariant accepts images and videos, stored under images/ or videos/.
func MediaVariant(maxBytes int64) Variant {
	ext := map[string]string{
		".mp4": domain.FileTypeVideo,
		".mov": domain.FileTypeVideo,
		".avi": domain.FileTypeVideo,
		".mkv": domain.FileTypeVideo,
	}
	for k, v := range imageExtensions {
		ext[k] = v
	}
	return Variant{
		Kind:       "media",
		FormField:  "media",
		MaxBytes:   maxBytes,
		Extensions: ext,
		MIMETypes: append([]string{
			"video/mp4", "video/quicktime", "video/x-msvideo", "video/x-matroska",
		}, imageMIMETypes...),

		MsgNoFile:       "No file uploaded",
		MsgBadType:      "Error: Only images (JPEG, JPG, PNG, GIF) and videos (MP4, MOV, AVI, MKV) are allowed!",
		MsgUploadFailed: "Failed to upload file to storage",
		MsgSaveFailed:   "Failed to save media metadata",
		MsgNotFound:     "Media not found or not owned by user",
		MsgUploaded:     "Media uploaded successfully",
		MsgDeleted:      "Media deleted successfully",

		objectKey: func(_, fileName, fileType string) string {
			if fileType == domain.FileTypeVideo {
				return path.Join("videos", fileName)
			}
			return path.Join("images", fileName)
		},
	}
}

// ImageVariant accepts images only, stored under a per-user prefix.
func ImageVariant(maxBytes int64) Variant {
	return Variant{
		Kind:       "image",
		FormField:  "image",
		MaxBytes:   maxBytes,
		Extensions: imageExtensions,
		MIMETypes:  imageMIMETypes,

		MsgNoFile:       "No image uploaded",
		MsgBadType:      "Error: Only images (JPEG, JPG, PNG, GIF) are allowed!",
		MsgUploadFailed: "Failed to upload image",
		MsgSaveFailed:   "Failed to save image metadata",
		MsgNotFound:     "Image not found or not owned by user",
		MsgUploaded:     "Image uploaded successfully",
		MsgDeleted:      "Image deleted successfully",

		objectKey: func(userID, fileName, _ string) string {
			return path.Join("user-"+userID, fileName)
		},
	}
}
