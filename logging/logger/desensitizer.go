package logger

import (
	"strings"

	"github.com/ncobase/blogclient/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// Desensitizer is a logrus hook masking sensitive fields before an entry
// is formatted.
type Desensitizer struct {
	config *config.Desensitization
	fields map[string]struct{}
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	d := &Desensitizer{
		config: cfg,
		fields: make(map[string]struct{}, len(cfg.SensitiveFields)),
	}
	for _, f := range cfg.SensitiveFields {
		d.fields[strings.ToLower(f)] = struct{}{}
	}
	return d
}

// Levels returns all log levels
func (d *Desensitizer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire masks sensitive fields in place
func (d *Desensitizer) Fire(entry *logrus.Entry) error {
	if !d.config.Enabled {
		return nil
	}
	for key, value := range entry.Data {
		if d.isSensitiveField(key) {
			entry.Data[key] = d.mask(value)
		}
	}
	return nil
}

// isSensitiveField matches field names exactly or by suffix, so
// "id_token" and "x_access_token" both match "token".
func (d *Desensitizer) isSensitiveField(key string) bool {
	k := strings.ToLower(key)
	if _, ok := d.fields[k]; ok {
		return true
	}
	for f := range d.fields {
		if strings.HasSuffix(k, "_"+f) {
			return true
		}
	}
	return false
}

func (d *Desensitizer) mask(value any) any {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && s == "" {
		return s
	}
	return strings.Repeat(d.config.MaskChar, d.config.FixedMaskLength)
}
