package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixture  = "../readiness/store/memory/testdata/fixture.json"
	petrovID = "6f1c2a3e-8d4b-4c1a-9e2f-0a1b2c3d4e5f"
)

// execute runs readinessctl with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("READINESS_DATABASE_URL", "")
	t.Setenv("READINESS_KAFKA_BROKERS", "")
	t.Setenv("READINESS_REDIS_URL", "")

	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Root().Commands() {
		names[c.Name()] = true
		assert.NotEmpty(t, c.Short, "%s needs a short description", c.Name())
	}
	for _, want := range []string{"status", "dashboard", "deadlines", "record", "rules", "migrate", "seed"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestStatus(t *testing.T) {
	t.Run("renders a person", func(t *testing.T) {
		out, err := execute(t, "status", petrovID, "--fixture", fixture, "--as-of", "01.06.2025")
		require.NoError(t, err)
		assert.Contains(t, out, "Petrov A.")
		assert.Contains(t, out, "As of 01.06.2025")
		assert.Contains(t, out, "Day, simple weather")
		assert.Contains(t, out, "09.06.2025")
		assert.Contains(t, out, "YELLOW")
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := execute(t, "status", "nope", "--fixture", fixture)
		assert.ErrorContains(t, err, "invalid person id")
	})

	t.Run("malformed as-of", func(t *testing.T) {
		_, err := execute(t, "status", petrovID, "--fixture", fixture, "--as-of", "2025-06-01")
		assert.ErrorContains(t, err, "--as-of")
	})

	t.Run("no data source", func(t *testing.T) {
		_, err := execute(t, "status", petrovID)
		assert.ErrorContains(t, err, "no data source")
	})
}

func TestDashboard(t *testing.T) {
	out, err := execute(t, "dashboard", "--fixture", fixture, "--as-of", "01.06.2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Readiness as of 01.06.2025")
	assert.Contains(t, out, "Ivanova M.")
	assert.Contains(t, out, "2 people:")
}

func TestDeadlines(t *testing.T) {
	t.Run("lists notices", func(t *testing.T) {
		out, err := execute(t, "deadlines", "--fixture", fixture, "--as-of", "01.06.2025")
		require.NoError(t, err)
		assert.Contains(t, out, "warning")
		assert.Contains(t, out, "Day, simple weather")
		assert.Contains(t, out, "09.06.2025")
	})

	t.Run("nothing due far in the past", func(t *testing.T) {
		out, err := execute(t, "deadlines", "--fixture", fixture, "--as-of", "01.01.2020")
		require.NoError(t, err)
		assert.Contains(t, out, "No deadlines within the warning window.")
	})

	t.Run("publish needs brokers", func(t *testing.T) {
		_, err := execute(t, "deadlines", "--publish", "--fixture", fixture)
		assert.ErrorContains(t, err, "READINESS_KAFKA_BROKERS")
	})
}

func TestRecord(t *testing.T) {
	t.Run("records and recomputes", func(t *testing.T) {
		out, err := execute(t, "record", petrovID, "--fixture", fixture, "--as-of", "01.06.2025",
			"--requirement", "day_simple", "--equipment", "101", "--date", "31.05.2025")
		require.NoError(t, err)
		assert.Contains(t, out, "Recorded day_simple for Petrov A.")
		assert.Contains(t, out, "30.06.2025")
	})

	t.Run("rejects future dates", func(t *testing.T) {
		_, err := execute(t, "record", petrovID, "--fixture", fixture, "--as-of", "01.06.2025",
			"--requirement", "low_altitude", "--family", "syllabus", "--date", "05.06.2025")
		assert.ErrorContains(t, err, "future")
	})

	t.Run("requirement flag is required", func(t *testing.T) {
		_, err := execute(t, "record", petrovID, "--fixture", fixture)
		assert.ErrorContains(t, err, "requirement")
	})
}

func TestRulesCheck(t *testing.T) {
	t.Run("summarizes a valid file", func(t *testing.T) {
		out, err := execute(t, "rules", "check", "../readiness/config/testdata/rules.toml")
		require.NoError(t, err)
		assert.Contains(t, out, "Rules version 2025.2")
		assert.Contains(t, out, "KBP-BA/RA > KBP-VA")
		assert.Contains(t, out, "control +7d, warning 20d")
		assert.Contains(t, out, "strike_simple_targets")
		assert.Contains(t, out, "OK")
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("version = [unterminated"), 0o600))
		_, err := execute(t, "rules", "check", path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "rules", "check", filepath.Join(t.TempDir(), "none.toml"))
		assert.ErrorContains(t, err, "not found")
	})
}

func TestDatabaseCommandsNeedURL(t *testing.T) {
	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "database URL is required")

	_, err = execute(t, "seed", fixture)
	assert.ErrorContains(t, err, "database URL is required")
}
