package config

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TRIAL_COUNT", "2500")
	if got := getEnvInt("TRIAL_COUNT", 10000); got != 2500 {
		t.Errorf("Expected override 2500, got %d", got)
	}
	if got := getEnvInt("MISSING_KEY_FOR_TEST", 30); got != 30 {
		t.Errorf("Expected fallback 30, got %d", got)
	}
	t.Setenv("MAX_HORIZON_PERIODS", "many")
	if got := getEnvInt("MAX_HORIZON_PERIODS", 520); got != 520 {
		t.Errorf("Expected fallback for non-integer value, got %d", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("TRIAL_COUNT", "777")
	t.Setenv("HORIZON_WINDOW_PERIODS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Trials != 777 {
		t.Errorf("Expected 777 trials, got %d", cfg.Trials)
	}
	if cfg.HorizonWindow != 12 {
		t.Errorf("Expected horizon window 12, got %d", cfg.HorizonWindow)
	}
	if cfg.MaxHorizon != 520 {
		t.Errorf("Expected default max horizon 520, got %d", cfg.MaxHorizon)
	}
}

// godotenv keeps double quotes inside single-quoted values; settings like
// quoted data paths must survive a round trip through a .env file.
func TestGodotenvQuoting(t *testing.T) {
	content := `DATA_PATH='path with "quotes"'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `path with "quotes"`
	if env["DATA_PATH"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["DATA_PATH"])
	}
}
