package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Media    MediaConfig    `mapstructure:"media"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// Supported document store drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver         string        `mapstructure:"driver"`
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Supported image hosts.
const (
	ProviderCDN = "cdn"
	ProviderS3  = "s3"
)

// MediaConfig configures the image host and the GIF pipeline.
type MediaConfig struct {
	Provider     string `mapstructure:"provider"`
	UploadURL    string `mapstructure:"upload_url"`
	DeliveryURL  string `mapstructure:"delivery_url"`
	CloudName    string `mapstructure:"cloud_name"`
	UploadPreset string `mapstructure:"upload_preset"`
	// APIKey and APISecret enable signed deletes. Unsigned hosts cannot delete.
	APIKey        string        `mapstructure:"api_key"`
	APISecret     string        `mapstructure:"api_secret"`
	DefaultFolder string        `mapstructure:"default_folder"`
	FrameDelay    time.Duration `mapstructure:"frame_delay"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	MaxUploadSize int64         `mapstructure:"max_upload_size"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	// PublicURL serves objects directly. Empty means the bucket is private
	// and delivery goes through presigned URLs.
	PublicURL string `mapstructure:"public_url"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AdminConfig holds the navigation targets of the route guard.
type AdminConfig struct {
	LoginPath     string `mapstructure:"login_path"`
	DashboardPath string `mapstructure:"dashboard_path"`
}

// CORSConfig lists the console origins allowed to call the API. Lists may be
// given as comma separated environment values.
type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

var defaults = map[string]any{
	"server.address":           ":8080",
	"server.read_timeout":      "15s",
	"server.write_timeout":     "60s",
	"server.idle_timeout":      "60s",
	"database.driver":          DriverMongo,
	"database.uri":             "mongodb://localhost:27017",
	"database.name":            "fitness_admin",
	"database.connect_timeout": "10s",
	"media.provider":           ProviderCDN,
	"media.upload_url":         "https://api.cloudinary.com",
	"media.delivery_url":       "https://res.cloudinary.com",
	"media.cloud_name":         "",
	"media.upload_preset":      "",
	"media.api_key":            "",
	"media.api_secret":         "",
	"media.default_folder":     "",
	"media.frame_delay":        "500ms",
	"media.http_timeout":       "30s",
	"media.max_upload_size":    10 << 20,
	"s3.endpoint":              "",
	"s3.region":                "us-east-1",
	"s3.access_key_id":         "",
	"s3.secret_access_key":     "",
	"s3.bucket_name":           "",
	"s3.public_url":            "",
	"s3.use_ssl":               true,
	"jwt.secret":               "",
	"jwt.expiration":           "1h",
	"admin.login_path":         "/login",
	"admin.dashboard_path":     "/admin/main-categories",
	"cors.allowed_origins":     []string{},
	"cors.allow_credentials":   true,
	"cors.max_age":             "12h",
}

// LoadConfig reads config.yaml from path, then environment variables
// (server.address -> SERVER_ADDRESS). A .env file in path is loaded into the
// environment first without overriding variables that are already set.
// Missing files are not an error.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Every key needs a default, AutomaticEnv only overrides known keys.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}
