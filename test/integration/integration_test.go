//go:build integration

// Package integration runs the Gherkin features in features/ against the full
// router backed by in-memory SQLite, miniredis and a stub Resend server.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/manjeet0505/Expense/test/integration/steps"
)

func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format: "pretty",
		Paths:  []string{"features"},
		Output: colors.Colored(os.Stdout),
		// Scenarios truncate the shared database between runs.
		Concurrency: 1,
		Strict:      true,
		Tags:        os.Getenv("GODOG_TAGS"),
		TestingT:    t,
	}

	status := godog.TestSuite{
		Name:                 "expense-api",
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options:              &opts,
	}.Run()
	if status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}
