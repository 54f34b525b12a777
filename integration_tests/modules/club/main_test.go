//go:build integration

package clubintegrationtests

import (
	"log"
	"os"
	"testing"

	"github.com/Black-And-White-Club/clubhouse/integration_tests/testutils"
)

// testEnv is the shared test environment managed by TestMain.
var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	env, err := testutils.NewTestEnvironment()
	if err != nil {
		log.Fatalf("Failed to set up test environment: %v", err)
	}
	testEnv = env

	code := m.Run()
	env.Cleanup()
	os.Exit(code)
}
