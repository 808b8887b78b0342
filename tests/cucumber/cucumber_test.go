package cucumber

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

func TestCucumberFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "corpus-check-features",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{filepath.Join("..", "..", "spec", "features")},
			Tags:     "@smoke",
			Output:   io.Discard,
			TestingT: t,
		},
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("cucumber features exited with status %d", status)
	}
}
