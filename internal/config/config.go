package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SeenStoreMemory = "memory"
	SeenStoreSQLite = "sqlite"
)

type Config struct {
	CameraIndex     int           // -1 means ask the operator
	Cooldown        time.Duration // Minimalny odstęp między kolejnymi raportami
	ProbeLimit      int           // Ile indeksów kamer maksymalnie sprawdzić
	LogDirectory    string
	DiagnosticLog   string   // Plik, do którego trafia stderr na czas działania
	Symbologies     []string // Puste = wszystkie obsługiwane
	SeenStore       string
	WindowTitle     string
	QuitKey         string
	ReplayDirectory string // Katalog z obrazami zamiast kamery
	Headless        bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		CameraIndex:     getEnvAsInt("CAMERA_INDEX", -1),
		Cooldown:        getEnvAsDuration("COOLDOWN", 2*time.Second),
		ProbeLimit:      getEnvAsInt("PROBE_LIMIT", 10),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
		DiagnosticLog:   getEnv("DIAG_LOG", "zbar_errors.log"),
		Symbologies:     getEnvAsList("SYMBOLOGIES", nil),
		SeenStore:       getEnv("SEEN_STORE", SeenStoreMemory),
		WindowTitle:     getEnv("WINDOW_TITLE", "Barcode Reader"),
		QuitKey:         getEnv("QUIT_KEY", "q"),
		ReplayDirectory: getEnv("REPLAY_DIR", ""),
		Headless:        getEnvAsBool("HEADLESS", false),
	}
}

// QuitKeyCode returns the key code polled by the display loop.
func (c *Config) QuitKeyCode() int {
	if c.QuitKey == "" {
		return 'q'
	}
	return int(c.QuitKey[0])
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("1500ms") and plain seconds ("2", "2.5").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}
