package config

import (
	"github.com/ncobase/blogclient/validator"
	"github.com/spf13/viper"
)

// Upload holds the image checks applied before uploading.
type Upload = validator.ImageRules

func getUploadConfig(v *viper.Viper) *Upload {
	return &Upload{
		MaxBytes:     getInt64OrDefault(v, "upload.max_bytes", validator.DefaultMaxImageBytes),
		AllowedTypes: v.GetStringSlice("upload.allowed_types"),
	}
}
