package structs

// UploadURLBody is the payload of the upload-url endpoints.
type UploadURLBody struct {
	ContentType string `json:"contentType" validate:"required"`
}

// UploadTarget is a pre-signed upload destination.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
}

// File is an image selected for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the file size in bytes.
func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}
