package config

import (
	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level           int              `json:"level" yaml:"level"`
	Format          string           `json:"format" yaml:"format"`
	Output          string           `json:"output" yaml:"output"`
	OutputFile      string           `json:"output_file" yaml:"output_file"`
	Desensitization *Desensitization `json:"desensitization" yaml:"desensitization"`
}

// Desensitization holds desensitization settings
type Desensitization struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	SensitiveFields []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	MaskChar        string   `json:"mask_char" yaml:"mask_char"`
	FixedMaskLength int      `json:"fixed_mask_length" yaml:"fixed_mask_length"`
}

// Default sensitive field patterns
var defaultSensitiveFields = []string{
	"password", "new_password", "confirmation_code",
	"token", "access_token", "id_token", "refresh_token", "authorization",
	"secret", "client_secret",
}

// GetConfig returns the logger configuration.
// Level follows logrus numbering, 4 (info) when unset.
func GetConfig(v *viper.Viper) *Config {
	level := 4
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}
	output := v.GetString("logger.output")
	if output == "" {
		output = "stderr"
	}
	return &Config{
		Level:           level,
		Format:          v.GetString("logger.format"),
		Output:          output,
		OutputFile:      v.GetString("logger.output_file"),
		Desensitization: getDesensitizationConfig(v),
	}
}

func getDesensitizationConfig(v *viper.Viper) *Desensitization {
	d := &Desensitization{
		Enabled:         true,
		SensitiveFields: defaultSensitiveFields,
		MaskChar:        "*",
		FixedMaskLength: 6,
	}
	if !v.IsSet("logger.desensitization") {
		return d
	}
	if v.IsSet("logger.desensitization.enabled") {
		d.Enabled = v.GetBool("logger.desensitization.enabled")
	}
	if fields := v.GetStringSlice("logger.desensitization.sensitive_fields"); len(fields) > 0 {
		d.SensitiveFields = fields
	}
	if c := v.GetString("logger.desensitization.mask_char"); c != "" {
		d.MaskChar = c
	}
	if n := v.GetInt("logger.desensitization.fixed_mask_length"); n > 0 {
		d.FixedMaskLength = n
	}
	return d
}
