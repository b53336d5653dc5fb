package validator

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/structs"
)

// DefaultMaxImageBytes is the largest accepted thumbnail or avatar.
const DefaultMaxImageBytes int64 = 5 << 20

// imageTypes are the content types the upload-url endpoints accept.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageRules configures image checks.
type ImageRules struct {
	MaxBytes     int64
	AllowedTypes []string
}

func (r ImageRules) allowed(contentType string) bool {
	if len(r.AllowedTypes) == 0 {
		_, ok := imageTypes[contentType]
		return ok
	}
	for _, t := range r.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// IsImageType reports whether contentType is an accepted image type.
func IsImageType(contentType string) bool {
	_, ok := imageTypes[normalizeType(contentType)]
	return ok
}

// ImageExt returns the file extension for an accepted image type.
func ImageExt(contentType string) string {
	return imageTypes[normalizeType(contentType)]
}

// ValidateImage checks an upload before any request is issued. The declared
// type must be an accepted image type, the content must sniff as that same
// type and the size must be within limits.
func ValidateImage(f *structs.File, rules ImageRules) error {
	if f == nil || len(f.Data) == 0 {
		return ecode.Validation(ecode.FieldIsBlank("image"), map[string]string{"image": "The image must not be empty."})
	}
	maxBytes := rules.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	ct := normalizeType(f.ContentType)
	if !rules.allowed(ct) {
		return ecode.Validation(ecode.FieldIsInvalid("image type"), map[string]string{"contentType": "The image must be a JPEG, PNG, GIF or WebP file."})
	}
	if f.Size() > maxBytes {
		return ecode.Validation(ecode.FieldIsTooLarge("image"), map[string]string{"size": "The image is larger than the allowed size."})
	}
	detected := mimetype.Detect(f.Data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return ecode.Validation(ecode.FieldIsInvalid("image content"), map[string]string{"data": "The file content is not an image."})
	}
	if !detected.Is(ct) {
		return ecode.Validation(ecode.FieldIsInvalid("image content"), map[string]string{"data": "The file content is " + detected.String() + ", not " + ct + "."})
	}
	return nil
}

// DetectType sniffs the content type of data.
func DetectType(data []byte) string {
	return normalizeType(mimetype.Detect(data).String())
}

func normalizeType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
