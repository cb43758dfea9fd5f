//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "places-api"
	ConsumerName = "places-frontend"

	StateUserExists   = "user u-pact exists"
	StatePlaceExists  = "place p-pact exists"
	StatePlaceMissing = "no place with id p-missing"
)

const (
	ExistingUserID  = "u-pact"
	ExistingPlaceID = "p-pact"
	MissingPlaceID  = "p-missing"

	UserEmail    = "pact.user@example.com"
	UserPassword = "pact-pass"
)

const (
	examplePlaceTitle       = "Empire State Building"
	examplePlaceDescription = "One of the most famous sky scrapers in the world!"
	examplePlaceAddress     = "20 W 34th St, New York, NY 10001"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the places frontend consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCreatePlacePayload is the body the consumer posts to create a place.
func ExampleCreatePlacePayload() map[string]any {
	return map[string]any{
		"title":       examplePlaceTitle,
		"description": examplePlaceDescription,
		"address":     examplePlaceAddress,
		"creator":     ExistingUserID,
	}
}

// ExamplePlace returns the fields seeded for StatePlaceExists.
func ExamplePlace() (title, description, address string) {
	return examplePlaceTitle, examplePlaceDescription, examplePlaceAddress
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
