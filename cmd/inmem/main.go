// Dev server backed entirely by in-memory repositories. Notifications are
// logged instead of emailed, so signup OTPs and reset links show up in the
// console. Nothing survives a restart.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"

	"github.com/freshmart/freshmart/pkg/account"
	accountapi "github.com/freshmart/freshmart/pkg/account/api"
	"github.com/freshmart/freshmart/pkg/auth"
	"github.com/freshmart/freshmart/pkg/catalog"
	catalogapi "github.com/freshmart/freshmart/pkg/catalog/api"
	"github.com/freshmart/freshmart/pkg/checkout"
	checkoutapi "github.com/freshmart/freshmart/pkg/checkout/api"
	"github.com/freshmart/freshmart/pkg/contact"
	contactapi "github.com/freshmart/freshmart/pkg/contact/api"
	"github.com/freshmart/freshmart/pkg/notification"
)

type Config struct {
	FrontendUrl string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	JwtSecret   string `env:"JWT_SECRET" env-default:"dev-jwt-secret"`
}

// consoleNotifier writes every notification to the log instead of delivering it.
type consoleNotifier struct{}

func (consoleNotifier) Send(noticeType notification.NoticeType, data notification.NotificationData, template notification.NoticeTemplate) error {
	slog.Info("Notification", "type", noticeType, "to", data.To, "data", data.Data)
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	config := Config{}
	cleanenv.ReadEnv(&config)

	notificationManager, err := notification.NewNotificationManagerWithOptions(
		config.FrontendUrl,
		notification.WithNotifier(notification.EmailSystem, consoleNotifier{}),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed initialize notification manager", "err", err)
		os.Exit(-1)
	}

	jwtService := auth.NewJwtServiceOptions(config.JwtSecret)

	accountRepo := account.NewInMemoryAccountRepository()
	accountService := account.NewAccountService(accountRepo, notificationManager)

	catalogService := catalog.NewCatalogService(catalog.NewInMemoryCatalogRepository())
	contactService := contact.NewContactService(contact.NewInMemoryContactRepository())
	checkoutService := checkout.NewCheckoutService(config.FrontendUrl)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	accountapi.Routes(server.R, accountapi.NewHandler(accountService, jwtService))
	catalogapi.Routes(server.R, catalogapi.NewHandler(catalogService))
	contactapi.Routes(server.R, contactapi.NewHandler(contactService))
	checkoutapi.Routes(server.R, checkoutapi.NewHandler(checkoutService))

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	reaper := account.NewReaper(accountRepo, account.WithInterval(60*time.Second))
	reaper.Start(reaperCtx)

	slog.Info("In-memory dev server ready", "frontend", config.FrontendUrl)
	server.Run()
}
