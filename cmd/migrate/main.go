package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/playrummy/ledger/internal/config"
	"github.com/spf13/viper"
)

func main() {
	var (
		configPath     = flag.String("config", "./config", "Path to config directory")
		env            = flag.String("env", config.GetEnvironment(), "Environment (development, test, production)")
		migrationsPath = flag.String("path", "./migrations", "Path to migration files")
		action         = flag.String("action", "up", "Migration action: up, down")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *env)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := validateMigrationsPath(*migrationsPath); err != nil {
		log.Fatalf("Failed to validate migrations path: %v", err)
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", *migrationsPath),
		databaseURL(cfg),
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	defer m.Close()

	switch *action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to migrate up: %v", err)
		}
		fmt.Println("Successfully migrated up")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to migrate down: %v", err)
		}
		fmt.Println("Successfully migrated down")
	default:
		log.Fatalf("Unknown action: %s. Valid actions: up, down", *action)
	}
}

// loadConfig reads config.<env>.yml with the same RUMMY_* environment
// variable overrides the service itself applies, so migrations run against
// the database the service would connect to.
func loadConfig(configPath, env string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yml")
	v.AddConfigPath(configPath)

	v.AutomaticEnv()
	v.SetEnvPrefix("RUMMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &cfg, nil
}

// databaseURL builds the migrate source URL from the database config
func databaseURL(cfg *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

// validateMigrationsPath checks that the migrations directory exists and
// contains at least one migration file
func validateMigrationsPath(migrationsPath string) error {
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
	}

	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no migration files found in directory: %s", migrationsPath)
	}

	fmt.Printf("Found %d migration files in %s\n", len(files), migrationsPath)
	return nil
}
