package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration settings for the application.
type Config struct {
	// Server settings
	ListenAddress string
	ListenPort    string

	// Vault store settings
	DbFilePath   string
	SaveInterval time.Duration
	EnableBackup bool

	// Authentication settings
	JwtSecret     string // The actual secret key
	JwtSecretFile string // Path to the file containing the secret
	TokenLifetime time.Duration
	BcryptCost    int
}

const (
	defaultAddress       = "0.0.0.0"
	defaultPort          = "8080"
	defaultDbFile        = "./vault.json" // Relative to working dir
	defaultSaveInterval  = 3 * time.Second
	defaultEnableBackup  = true
	defaultJwtSecretFile = ""            // No default file
	defaultJwtKeyFile    = "./vault.key" // Default file if we generate a key
	defaultTokenLifetime = 1 * time.Hour
	defaultBcryptCost    = 12
)

// LoadConfig loads configuration from defaults, environment variables, and command-line flags.
// Command-line flags take precedence over environment variables, which take precedence over defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	// DOSSIERVAULT_ prefix for environment variables to avoid conflicts.
	flag.StringVar(&cfg.ListenAddress, "address", getEnv("DOSSIERVAULT_LISTEN_ADDRESS", defaultAddress), "Server listen address (Env: DOSSIERVAULT_LISTEN_ADDRESS)")
	// Defined with the ultimate default; the env var is checked after parsing.
	flag.StringVar(&cfg.ListenPort, "port", defaultPort, "Server listen port (Env: DOSSIERVAULT_LISTEN_PORT)")
	flag.StringVar(&cfg.DbFilePath, "db-file", getEnv("DOSSIERVAULT_DB_FILE_PATH", defaultDbFile), "Path to the JSON vault file (Env: DOSSIERVAULT_DB_FILE_PATH)")
	saveIntervalStr := flag.String("save-interval", getEnv("DOSSIERVAULT_SAVE_INTERVAL", defaultSaveInterval.String()), "Debounce interval for saving the vault (e.g., 5s, 100ms) (Env: DOSSIERVAULT_SAVE_INTERVAL)")
	flag.BoolVar(&cfg.EnableBackup, "enable-backup", getEnvBool("DOSSIERVAULT_ENABLE_BACKUP", defaultEnableBackup), "Enable vault backup (.bak file) before saving (Env: DOSSIERVAULT_ENABLE_BACKUP)")
	flag.StringVar(&cfg.JwtSecretFile, "jwt-secret-file", getEnv("DOSSIERVAULT_JWT_SECRET_FILE", defaultJwtSecretFile), "Path to file containing JWT secret key (overrides DOSSIERVAULT_JWT_SECRET env var) (Env: DOSSIERVAULT_JWT_SECRET_FILE)")

	cfg.TokenLifetime = defaultTokenLifetime
	cfg.BcryptCost = defaultBcryptCost

	flag.Parse()

	// Explicitly check environment variables so they can override defaults
	// when the corresponding flag was not provided.

	envPort := getEnv("DOSSIERVAULT_LISTEN_PORT", "")
	if cfg.ListenPort == defaultPort && envPort != "" {
		cfg.ListenPort = envPort
	}

	envDbFile := getEnv("DOSSIERVAULT_DB_FILE_PATH", "")
	if cfg.DbFilePath == defaultDbFile && envDbFile != "" {
		cfg.DbFilePath = envDbFile
	}

	envSaveInterval := getEnv("DOSSIERVAULT_SAVE_INTERVAL", "")
	if *saveIntervalStr == defaultSaveInterval.String() && envSaveInterval != "" {
		if _, err := time.ParseDuration(envSaveInterval); err == nil {
			*saveIntervalStr = envSaveInterval
		} else {
			log.Printf("WARN: Invalid duration in DOSSIERVAULT_SAVE_INTERVAL: '%s'. Using default/flag value. Error: %v", envSaveInterval, err)
		}
	}

	envJwtSecretFile := getEnv("DOSSIERVAULT_JWT_SECRET_FILE", "")
	if cfg.JwtSecretFile == defaultJwtSecretFile && envJwtSecretFile != "" {
		cfg.JwtSecretFile = envJwtSecretFile
	}

	var err error
	cfg.SaveInterval, err = time.ParseDuration(*saveIntervalStr)
	if err != nil {
		log.Printf("WARN: Invalid save-interval duration '%s'. Using default %s. Error: %v", *saveIntervalStr, defaultSaveInterval, err)
		cfg.SaveInterval = defaultSaveInterval
	}

	// JWT secret priority: File (CLI/Env) > Env Var > Default Key File > Generate.
	var secretSource string

	if cfg.JwtSecretFile != "" {
		secretBytes, err := os.ReadFile(cfg.JwtSecretFile)
		if err == nil {
			cfg.JwtSecret = strings.TrimSpace(string(secretBytes))
			if cfg.JwtSecret != "" {
				log.Printf("INFO: Loaded JWT secret from specified file: %s", cfg.JwtSecretFile)
				secretSource = fmt.Sprintf("File (%s)", cfg.JwtSecretFile)
			} else {
				log.Printf("WARN: Specified JWT secret file '%s' is empty or contains only whitespace. Ignoring.", cfg.JwtSecretFile)
			}
		} else {
			log.Printf("WARN: Failed to read specified JWT secret file '%s': %v. Checking other sources.", cfg.JwtSecretFile, err)
		}
	}

	if cfg.JwtSecret == "" {
		cfg.JwtSecret = strings.TrimSpace(getEnv("DOSSIERVAULT_JWT_SECRET", ""))
		if cfg.JwtSecret != "" {
			log.Printf("INFO: Loaded JWT secret from DOSSIERVAULT_JWT_SECRET environment variable.")
			secretSource = "Environment Variable (DOSSIERVAULT_JWT_SECRET)"
		}
	}

	if cfg.JwtSecret == "" {
		secretBytes, err := os.ReadFile(defaultJwtKeyFile)
		if err == nil {
			cfg.JwtSecret = strings.TrimSpace(string(secretBytes))
			if cfg.JwtSecret != "" {
				log.Printf("INFO: Loaded JWT secret from default key file: %s", defaultJwtKeyFile)
				secretSource = fmt.Sprintf("Default Key File (%s)", defaultJwtKeyFile)
			} else {
				log.Printf("WARN: Default JWT key file '%s' is empty or contains only whitespace. Will attempt generation.", defaultJwtKeyFile)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: Failed to read default JWT key file '%s': %v. Will attempt generation.", defaultJwtKeyFile, err)
		}
		// os.IsNotExist falls through to generation silently.
	}

	if cfg.JwtSecret == "" {
		log.Printf("INFO: JWT secret not found via file, environment variable, or default key file. Generating a new secret...")
		newSecret, err := generateRandomKey(32) // 256-bit key
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.JwtSecret = newSecret

		err = os.WriteFile(defaultJwtKeyFile, []byte(newSecret), 0600)
		if err != nil {
			log.Printf("WARN: Failed to save generated JWT secret to '%s': %v. The server will use the generated key for this session only.", defaultJwtKeyFile, err)
			secretSource = "Generated (In Memory)"
		} else {
			log.Printf("INFO: Successfully generated and saved new JWT secret to: %s", defaultJwtKeyFile)
			secretSource = fmt.Sprintf("Generated & Saved (%s)", defaultJwtKeyFile)
		}
	}

	if cfg.JwtSecret == "" {
		return nil, fmt.Errorf("failed to obtain a valid JWT secret after checking all sources and attempting generation")
	}

	absDbPath, err := filepath.Abs(cfg.DbFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not determine absolute path for db-file '%s': %w", cfg.DbFilePath, err)
	}
	cfg.DbFilePath = absDbPath

	fileInfo, err := os.Stat(cfg.DbFilePath)
	if err == nil && fileInfo.IsDir() {
		return nil, fmt.Errorf("vault path '%s' points to a directory, not a file", cfg.DbFilePath)
	}
	// A missing file is fine here; the vault is created on first run.

	logConfiguration(cfg, secretSource)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// Recognizes "true", "1", "yes" (case-insensitive) as true.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		log.Printf("WARN: Invalid boolean value for environment variable %s: '%s'. Using default: %t", key, value, fallback)
	}
	return fallback
}

// logConfiguration prints the loaded configuration settings.
func logConfiguration(cfg *Config, secretSource string) {
	log.Println("--- Configuration ---")
	log.Printf("Server Address: %s", cfg.ListenAddress)
	log.Printf("Server Port: %s", cfg.ListenPort)
	log.Printf("Vault File: %s", cfg.DbFilePath)
	log.Printf("Vault Save Interval: %s", cfg.SaveInterval)
	log.Printf("Vault Backup Enabled: %t", cfg.EnableBackup)
	log.Printf("JWT Secret Source: %s", secretSource)
	log.Printf("JWT Token Lifetime: %s", cfg.TokenLifetime)
	log.Printf("Bcrypt Cost: %d", cfg.BcryptCost)
	log.Println("---------------------")
}

// generateRandomKey generates a cryptographically secure random key of the
// specified byte length and returns it as a hex-encoded string.
func generateRandomKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
