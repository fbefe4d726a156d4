package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/freshmart/freshmart/pkg/account"
	accountapi "github.com/freshmart/freshmart/pkg/account/api"
	"github.com/freshmart/freshmart/pkg/auth"
	"github.com/freshmart/freshmart/pkg/catalog"
	catalogapi "github.com/freshmart/freshmart/pkg/catalog/api"
	"github.com/freshmart/freshmart/pkg/checkout"
	checkoutapi "github.com/freshmart/freshmart/pkg/checkout/api"
	"github.com/freshmart/freshmart/pkg/contact"
	contactapi "github.com/freshmart/freshmart/pkg/contact/api"
	"github.com/freshmart/freshmart/pkg/notice"
	"github.com/freshmart/freshmart/pkg/notification"
)

type FreshmartDbConfig struct {
	Host     string `env:"FRESHMART_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"FRESHMART_PG_PORT" env-default:"5432"`
	Database string `env:"FRESHMART_PG_DATABASE" env-default:"freshmart_db"`
	User     string `env:"FRESHMART_PG_USER" env-default:"freshmart"`
	Password string `env:"FRESHMART_PG_PASSWORD" env-default:"pwd"`
}

func (d FreshmartDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     int    `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME" env-default:"noreply@freshmart.example"`
	Password string `env:"EMAIL_PASSWORD" env-default:"pwd"`
	From     string `env:"EMAIL_FROM" env-default:"noreply@freshmart.example"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

type JwtConfig struct {
	Secret            string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	AccessTokenExpiry string `env:"ACCESS_TOKEN_EXPIRY" env-default:"24h"`
}

type AccountConfig struct {
	OtpExpiry        string `env:"OTP_EXPIRY" env-default:"5m"`
	ResetTokenExpiry string `env:"RESET_TOKEN_EXPIRY" env-default:"15m"`
	ReaperInterval   string `env:"OTP_REAPER_INTERVAL" env-default:"60s"`
}

type Config struct {
	FreshmartDbConfig FreshmartDbConfig
	EmailConfig       EmailConfig
	JwtConfig         JwtConfig
	AccountConfig     AccountConfig
	FrontendUrl       string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`
}

func main() {
	// Create a logger with source enabled
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true, // Enables line number & file path
	}))

	// Set the logger as the default
	slog.SetDefault(logger)

	// Load .env file if it exists (before reading environment variables)
	loadEnvFile()

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	dbConfig := config.FreshmartDbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	// Initialize NotificationManager and register email notifier
	notificationManager, err := notice.NewNotificationManager(
		config.FrontendUrl,
		notification.SMTPConfig{
			Host:     config.EmailConfig.Host,
			Port:     config.EmailConfig.Port,
			Username: config.EmailConfig.Username,
			Password: config.EmailConfig.Password,
			From:     config.EmailConfig.From,
			TLS:      config.EmailConfig.TLS,
		},
	)
	if err != nil {
		slog.Error("Failed initialize notification manager", "err", err)
		os.Exit(-1)
	}

	jwtService := auth.NewJwtServiceOptions(
		config.JwtConfig.Secret,
		auth.WithAccessExpiry(parseDuration(config.JwtConfig.AccessTokenExpiry, 24*time.Hour)),
	)

	accountRepo := account.NewPostgresAccountRepository(pool)
	accountService := account.NewAccountService(
		accountRepo,
		notificationManager,
		account.WithOtpExpiry(parseDuration(config.AccountConfig.OtpExpiry, 5*time.Minute)),
		account.WithResetTokenExpiry(parseDuration(config.AccountConfig.ResetTokenExpiry, 15*time.Minute)),
	)

	catalogService := catalog.NewCatalogService(catalog.NewPostgresCatalogRepository(pool))
	contactService := contact.NewContactService(contact.NewPostgresContactRepository(pool))
	checkoutService := checkout.NewCheckoutService(config.FrontendUrl)

	accountapi.Routes(server.R, accountapi.NewHandler(accountService, jwtService))
	catalogapi.Routes(server.R, catalogapi.NewHandler(catalogService))
	contactapi.Routes(server.R, contactapi.NewHandler(contactService))
	checkoutapi.Routes(server.R, checkoutapi.NewHandler(checkoutService))

	// Sweep pending accounts whose OTP lapsed. Stops when the server exits.
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	reaper := account.NewReaper(accountRepo,
		account.WithInterval(parseDuration(config.AccountConfig.ReaperInterval, 60*time.Second)),
	)
	reaper.Start(reaperCtx)

	server.Run()
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration, using default", "value", value, "default", fallback)
		return fallback
	}
	return d
}

// loadEnvFile loads environment variables from .env file if it exists
// Only sets variables that are not already set in the environment
func loadEnvFile() {
	// Get the directory where the executable is located
	execPath, err := os.Executable()
	if err != nil {
		slog.Error("Failed to get executable path", "error", err)
		return
	}

	execDir := filepath.Dir(execPath)
	envFile := filepath.Join(execDir, ".env")

	// Also check current working directory
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		cwd, err := os.Getwd()
		if err != nil {
			slog.Error("Failed to get current working directory", "error", err)
			return
		}
		envFile = filepath.Join(cwd, ".env")
	}

	// Check if .env file exists
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Info("No .env file found", "path", envFile)
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)

	// Load .env file using godotenv
	err = godotenv.Load(envFile)
	if err != nil {
		slog.Error("Failed to load .env file", "path", envFile, "error", err)
	}
}
