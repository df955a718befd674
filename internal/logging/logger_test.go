package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetState() {
	CloseAll()
	logsDir = ""
	config = Config{}
}

// TestAllCategoriesLog tests that every category creates a log file when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()
	resetState()
	defer resetState()

	if err := Initialize(tempDir, Config{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	categories := []Category{
		CategoryBoot,
		CategoryValidator,
		CategoryReport,
		CategoryBrowser,
		CategoryMarkup,
		CategoryWatch,
	}
	for _, cat := range categories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}
		l := Get(cat)
		l.Info("Test info message for %s", cat)
		l.Debug("Test debug message for %s", cat)
		l.Warn("Test warn message for %s", cat)
		l.Error("Test error message for %s", cat)
	}

	Validator("Convenience validator log")
	Browser("Convenience browser log")
	Watch("Convenience watch log")

	CloseAll()

	logsPath := filepath.Join(tempDir, ".gridkit", "logs")
	entries, err := os.ReadDir(logsPath)
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}
	for _, cat := range categories {
		found := false
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), "_"+string(cat)+".log") {
				found = true
				content, err := os.ReadFile(filepath.Join(logsPath, entry.Name()))
				if err != nil {
					t.Errorf("Failed to read log file for %s: %v", cat, err)
					continue
				}
				if !strings.Contains(string(content), "Test info message for "+string(cat)) {
					t.Errorf("Log file for %s is missing the info line", cat)
				}
				break
			}
		}
		if !found {
			t.Errorf("No log file found for category: %s", cat)
		}
	}
}

// TestDebugModeDisabled tests that no logs are created when debug_mode is false
func TestDebugModeDisabled(t *testing.T) {
	tempDir := t.TempDir()
	resetState()
	defer resetState()

	if err := Initialize(tempDir, Config{DebugMode: false}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	Get(CategoryValidator).Info("should not be written")

	if _, err := os.Stat(filepath.Join(tempDir, ".gridkit", "logs")); !os.IsNotExist(err) {
		t.Errorf("Logs directory should not exist in production mode, got err=%v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	tempDir := t.TempDir()
	resetState()
	defer resetState()

	err := Initialize(tempDir, Config{
		DebugMode:  true,
		Categories: map[string]bool{"browser": false},
	})
	if err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsCategoryEnabled(CategoryBrowser) {
		t.Error("browser category should be disabled")
	}
	if !IsCategoryEnabled(CategoryWatch) {
		t.Error("unlisted categories default to enabled")
	}
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	if err := Initialize("", Config{}); err == nil {
		t.Error("expected error for empty workspace")
	}
}

func TestTimer(t *testing.T) {
	resetState()
	timer := StartTimer(CategoryValidator, "op")
	if d := timer.StopWithThreshold(time.Hour); d < 0 {
		t.Errorf("negative duration %v", d)
	}
}
