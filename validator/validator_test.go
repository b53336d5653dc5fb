package validator

import (
	"bytes"
	"testing"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/structs"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestValidateStructBlankFields(t *testing.T) {
	fields := ValidateStruct(&structs.CreatePostBody{Title: "   ", Content: ""})
	if _, ok := fields["title"]; !ok {
		t.Errorf("expected title error, got %v", fields)
	}
	if _, ok := fields["content"]; !ok {
		t.Errorf("expected content error, got %v", fields)
	}

	if fields := ValidateStruct(&structs.CreatePostBody{Title: "Hello", Content: "# Body"}); len(fields) != 0 {
		t.Errorf("expected no errors, got %v", fields)
	}
}

func TestValidateStructOptionalPointers(t *testing.T) {
	blank := " "
	title := "New title"
	if fields := ValidateStruct(&structs.UpdatePostBody{Title: &title}); len(fields) != 0 {
		t.Errorf("expected partial update to pass, got %v", fields)
	}
	if fields := ValidateStruct(&structs.UpdatePostBody{Content: &blank}); len(fields) == 0 {
		t.Errorf("expected blank content to fail")
	}
}

func TestCheckReturnsValidationKind(t *testing.T) {
	err := Check(&structs.UpdateCommentBody{}, "comment")
	if !ecode.IsKind(err, ecode.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

var gifHeader = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name string
		file *structs.File
		max  int64
		ok   bool
	}{
		{"valid png", &structs.File{ContentType: "image/png", Data: pngPixel}, 0, true},
		{"declared type with params", &structs.File{ContentType: "image/png; charset=binary", Data: pngPixel}, 0, true},
		{"empty", &structs.File{ContentType: "image/png"}, 0, false},
		{"not an image type", &structs.File{ContentType: "application/pdf", Data: pngPixel}, 0, false},
		{"text posing as png", &structs.File{ContentType: "image/png", Data: []byte("hello world")}, 0, false},
		{"gif declared as gif", &structs.File{ContentType: "image/gif", Data: gifHeader}, 0, true},
		{"gif declared as png", &structs.File{ContentType: "image/png", Data: gifHeader}, 0, false},
		{"png declared as jpeg", &structs.File{ContentType: "image/jpeg", Data: pngPixel}, 0, false},
		{"too large", &structs.File{ContentType: "image/png", Data: append(bytes.Clone(pngPixel), make([]byte, 64)...)}, 32, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.file, ImageRules{MaxBytes: tt.max})
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !ecode.IsKind(err, ecode.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDetectType(t *testing.T) {
	if got := DetectType(pngPixel); got != "image/png" {
		t.Errorf("expected image/png, got %q", got)
	}
	if ImageExt("image/jpeg") != ".jpg" || IsImageType("text/plain") {
		t.Errorf("unexpected image type table result")
	}
}
