package api

import (
	"fmt"
	"os"
	"strings"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/credentials"
)

// Supported datastore backends.
const (
	DatastoreMemory   = "memory"
	DatastorePostgres = "postgres"
	DatastoreMongo    = "mongo"
)

// Config carries settings for the API, the worker and the audit job.
// Values come from an optional YAML file named by CONFIG_FILE, then from the
// environment, which wins.
type Config struct {
	Port              string `yaml:"port"`
	Datastore         string `yaml:"datastore"`
	PostgresDSN       string `yaml:"postgres_dsn"`
	MongoURI          string `yaml:"mongo_uri"`
	MongoDatabase     string `yaml:"mongo_database"`
	GeocodingAPIKey   string `yaml:"geocoding_api_key"`
	GeocodingBaseURL  string `yaml:"geocoding_base_url"`
	CredentialPolicy  string `yaml:"credential_policy"`
	DefaultPlaceImage string `yaml:"default_place_image"`
	DefaultUserImage  string `yaml:"default_user_image"`
	TemporalAddress   string `yaml:"temporal_address"`
	TemporalNamespace string `yaml:"temporal_namespace"`
	TemporalDisabled  bool   `yaml:"temporal_disabled"`
}

// LoadConfig reads the config file and environment, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	overlay(&cfg.Port, "PORT")
	overlay(&cfg.Datastore, "DATASTORE")
	overlay(&cfg.PostgresDSN, "POSTGRES_DSN")
	overlay(&cfg.MongoURI, "MONGO_URI")
	overlay(&cfg.MongoDatabase, "MONGO_DATABASE")
	overlay(&cfg.GeocodingAPIKey, "GEOCODING_API_KEY")
	overlay(&cfg.GeocodingBaseURL, "GEOCODING_BASE_URL")
	overlay(&cfg.CredentialPolicy, "CREDENTIAL_POLICY")
	overlay(&cfg.DefaultPlaceImage, "DEFAULT_PLACE_IMAGE")
	overlay(&cfg.DefaultUserImage, "DEFAULT_USER_IMAGE")
	overlay(&cfg.TemporalAddress, "TEMPORAL_ADDRESS")
	overlay(&cfg.TemporalNamespace, "TEMPORAL_NAMESPACE")
	if raw, ok := os.LookupEnv("TEMPORAL_DISABLED"); ok {
		cfg.TemporalDisabled = isTruthy(raw)
	}

	cfg.Port = defaultString(cfg.Port, "8080")
	cfg.TemporalAddress = defaultString(cfg.TemporalAddress, client.DefaultHostPort)
	cfg.TemporalNamespace = defaultString(cfg.TemporalNamespace, client.DefaultNamespace)
	cfg.Datastore = strings.ToLower(strings.TrimSpace(cfg.Datastore))
	if cfg.Datastore == "" {
		switch {
		case cfg.PostgresDSN != "":
			cfg.Datastore = DatastorePostgres
		case cfg.MongoURI != "":
			cfg.Datastore = DatastoreMongo
		default:
			cfg.Datastore = DatastoreMemory
		}
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Datastore {
	case DatastoreMemory:
	case DatastorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("DATASTORE=postgres requires POSTGRES_DSN")
		}
	case DatastoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("DATASTORE=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("DATASTORE must be one of memory, postgres, mongo; got %q", c.Datastore)
	}
	if _, err := credentials.FromName(c.CredentialPolicy); err != nil {
		return fmt.Errorf("CREDENTIAL_POLICY: %w", err)
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func overlay(target *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*target = val
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
