// Package notice wires the notification manager with the templates the
// storefront actually sends: the signup OTP code and the password reset link.
package notice

import (
	"github.com/freshmart/freshmart/pkg/notification"
)

// NewNotificationManager creates a notification manager backed by SMTP with
// the default email templates registered.
func NewNotificationManager(baseUrl string, smtpConfig notification.SMTPConfig) (*notification.NotificationManager, error) {
	return notification.NewNotificationManagerWithOptions(
		baseUrl,
		notification.WithSMTP(smtpConfig),
		notification.WithDefaultTemplates(),
	)
}

// NewMockNotificationManager creates a manager that records sends in memory,
// for tests and the inmem dev server.
func NewMockNotificationManager(baseUrl string) (*notification.NotificationManager, *notification.MockNotifier, error) {
	mock := &notification.MockNotifier{}
	nm, err := notification.NewNotificationManagerWithOptions(
		baseUrl,
		notification.WithNotifier(notification.EmailSystem, mock),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		return nil, nil, err
	}
	return nm, mock, nil
}
