package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// UPS holds the carrier credentials and request defaults.
	UPS UPSConfig `mapstructure:",squash"`

	// Redis holds the cache connection and quote TTL settings.
	Redis RedisConfig `mapstructure:",squash"`
}

// UPSConfig holds the carrier credentials and the client-level request defaults.
// Per-request options passed to the shipping adapter override these.
type UPSConfig struct {
	// AccessKey is the XML access license number issued by the carrier.
	AccessKey string `mapstructure:"UPS_ACCESS_KEY" required:"true"`
	// UserID is the account login.
	UserID string `mapstructure:"UPS_USER_ID" required:"true"`
	// Password is the account password.
	Password string `mapstructure:"UPS_PASSWORD" required:"true"`
	// TestMode routes requests to the carrier's customer integration environment.
	TestMode bool `mapstructure:"UPS_TEST_MODE" default:"true"`
	// OriginAccount is the shipper account number attached to origin locations.
	OriginAccount string `mapstructure:"UPS_ORIGIN_ACCOUNT"`
	// DestinationAccount is the shipper-assigned identification for recipients.
	DestinationAccount string `mapstructure:"UPS_DESTINATION_ACCOUNT"`
	// PickupType selects the pickup arrangement (e.g., daily_pickup, customer_counter).
	PickupType string `mapstructure:"UPS_PICKUP_TYPE" default:"daily_pickup"`
	// CustomerClassification overrides the classification derived from PickupType.
	CustomerClassification string `mapstructure:"UPS_CUSTOMER_CLASSIFICATION"`
	// LabelPrintCode is the label print method code requested from the carrier.
	LabelPrintCode string `mapstructure:"UPS_LABEL_PRINT_CODE" default:"GIF"`
	// LabelFormatCode is the label image format code requested from the carrier.
	LabelFormatCode string `mapstructure:"UPS_LABEL_FORMAT_CODE" default:"GIF"`
	// HTTPUserAgent is sent in the label specification block.
	HTTPUserAgent string `mapstructure:"UPS_HTTP_USER_AGENT" default:"Mozilla/4.5"`
	// RequestTimeoutSeconds bounds a single carrier round trip.
	RequestTimeoutSeconds int `mapstructure:"UPS_REQUEST_TIMEOUT_SECONDS" default:"30"`
}

// RedisConfig holds cache connection details.
type RedisConfig struct {
	// URL is the redis connection string (redis://[:password@]host[:port][/db]).
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// RateQuoteTTLSeconds controls how long rate quotes are memoized.
	RateQuoteTTLSeconds int `mapstructure:"RATE_CACHE_TTL_SECONDS" default:"300"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
