package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Services ServicesConfig `mapstructure:"services"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	S3       S3Config       `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// ServicesConfig points at the external Users and Exercises collaborators.
type ServicesConfig struct {
	UsersURL     string        `mapstructure:"users_url"`
	ExercisesURL string        `mapstructure:"exercises_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// JWTConfig defines JWT specific configuration. Only the secret is
// needed: tokens are issued elsewhere, this service just verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// AdminConfig carries the bcrypt hash of the service-to-service
// credential that gates the template admin endpoints.
type AdminConfig struct {
	CredentialHash string `mapstructure:"credential_hash"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling, e.g. services.users_url -> SERVICES_USERS_URL
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "routines_service")
	viper.SetDefault("services.users_url", "http://localhost:8001/")
	viper.SetDefault("services.exercises_url", "http://localhost:8002/")
	viper.SetDefault("services.timeout", "5s")
	viper.SetDefault("s3.enabled", false)
	viper.SetDefault("s3.use_ssl", true)

	err = viper.ReadInConfig()
	// Missing config file is fine; env vars and defaults can carry everything.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
