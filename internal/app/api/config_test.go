package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

var configKeys = []string{
	"CONFIG_FILE", "PORT", "DATASTORE", "POSTGRES_DSN", "MONGO_URI", "MONGO_DATABASE",
	"GEOCODING_API_KEY", "GEOCODING_BASE_URL", "CREDENTIAL_POLICY", "DEFAULT_PLACE_IMAGE",
	"DEFAULT_USER_IMAGE", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, DatastoreMemory, cfg.Datastore)
	require.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	require.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	require.False(t, cfg.TemporalDisabled)
}

func TestLoadConfig_DatastoreDetection(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/places")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DatastorePostgres, cfg.Datastore)

	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DatastoreMongo, cfg.Datastore)
}

func TestLoadConfig_RejectsInconsistentSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without dsn": {"DATASTORE": "postgres"},
		"mongo without uri":    {"DATASTORE": "mongo"},
		"unknown datastore":    {"DATASTORE": "sqlite"},
		"unknown policy":       {"CREDENTIAL_POLICY": "md5"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_FileOverlaidByEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
datastore: mongo
mongo_uri: mongodb://db:27017
mongo_database: atlas
credential_policy: bcrypt
temporal_disabled: true
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, DatastoreMongo, cfg.Datastore)
	require.Equal(t, "atlas", cfg.MongoDatabase)
	require.Equal(t, "bcrypt", cfg.CredentialPolicy)
	require.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_BadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	_, err := LoadConfig()
	require.Error(t, err)
}
