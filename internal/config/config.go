// Package config loads runtime settings and rule definitions.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"httprule/internal/pkg/errs"
)

// EnvPrefix namespaces environment overrides, e.g. HTTPRULE_LOG_LEVEL.
const EnvPrefix = "HTTPRULE"

// Configuration keys.
const (
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyLogSensitive    = "log.sensitive_headers"
	KeyTransformFormat = "transform.format"
	KeyTransformMode   = "transform.mode"
	KeyRules           = "rules"
)

var validate = validator.New()

// Config is the runtime configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Transform TransformConfig `mapstructure:"transform"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	// File enables a rotated log file next to stderr output.
	File string `mapstructure:"file"`
	// SensitiveHeaders are masked whole in debug header logs.
	SensitiveHeaders []string   `mapstructure:"sensitive_headers"`
	MaskRules        []MaskRule `mapstructure:"mask_rules" validate:"dive"`
}

// MaskRule is an extra pattern masked in logged header values.
type MaskRule struct {
	Name        string `mapstructure:"name" validate:"required"`
	Pattern     string `mapstructure:"pattern" validate:"required"`
	Replacement string `mapstructure:"replacement"`
}

type TransformConfig struct {
	Format string `mapstructure:"format"`
	Mode   string `mapstructure:"mode" validate:"omitempty,oneof=sync async stream"`
}

// Init 初始化配置，加载 .env 和 config.yaml
func Init(cfgFile string) {
	// Load .env file (ignore if not exists)
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	setDefaults(viper.GetViper())

	// Environment variables
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogSensitive, []string{})
	v.SetDefault(KeyTransformFormat, "json")
	v.SetDefault(KeyTransformMode, "sync")
}

// Load decodes and validates the runtime section of v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, errs.InvalidValuef("failed to decode config: %v", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errs.InvalidValuef("invalid config: %v", err)
	}
	return &cfg, nil
}

// decodeHook lets a single scalar stand in for a one-element list, so
// `method: GET` decodes like `method: [GET]`.
func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))
}
