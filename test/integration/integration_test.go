package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/newsdesk/pkg/logging"
)

func runSuite(t *testing.T, tc *TestContext) {
	t.Helper()
	logging.ConfigureTests()
	suite := godog.TestSuite{
		Name: "newsdesk-" + tc.Backend,
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps := NewStepsContext(tc)
			steps.RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("Non-zero status returned, failed to run feature tests")
	}
}

// TestFeatures runs the feature suite against an in-process server backed by
// the memory store.
func TestFeatures(t *testing.T) {
	runSuite(t, NewMemoryContext())
}

// TestFeaturesPostgres runs the same suite against a postgres container.
func TestFeaturesPostgres(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := NewPostgresContext(ctx)
	if err != nil {
		t.Fatalf("Failed to create test context: %v", err)
	}
	defer tc.Close(ctx)

	runSuite(t, tc)
}
