package notification

import (
	"testing"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager("")
	if nm == nil {
		t.Error("NewNotificationManager returned nil")
	}
	if nm.notifiers == nil {
		t.Error("notifiers map not initialized")
	}
	if nm.notificationRegistry == nil {
		t.Error("notificationRegistry map not initialized")
	}
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager("")
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	if n, exists := nm.notifiers[EmailSystem]; !exists {
		t.Error("Notifier not registered")
	} else if n != mockNotifier {
		t.Error("Wrong notifier registered")
	}

	// Registering again overwrites the existing notifier
	newMockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, newMockNotifier)
	if n := nm.notifiers[EmailSystem]; n != newMockNotifier {
		t.Error("Notifier not overwritten")
	}
}

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager("")

	tests := []struct {
		name        string
		noticeType  NoticeType
		system      NotificationSystem
		template    NoticeTemplate
		shouldError bool
	}{
		{
			name:        "Valid registration with both Text and Html",
			noticeType:  ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example", Text: "example", Html: "<p>example</p>"},
			shouldError: false,
		},
		{
			name:        "Valid registration with Text only",
			noticeType:  ExampleNotice,
			system:      SMSSystem,
			template:    NoticeTemplate{Subject: "Example", Text: "example"},
			shouldError: false,
		},
		{
			name:        "Empty notice type",
			noticeType:  "",
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example", Text: "example"},
			shouldError: true,
		},
		{
			name:        "Empty system",
			noticeType:  ExampleNotice,
			system:      "",
			template:    NoticeTemplate{Subject: "Example", Text: "example"},
			shouldError: true,
		},
		{
			name:        "Template without body",
			noticeType:  ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nm.RegisterNotification(tt.noticeType, tt.system, tt.template)
			if tt.shouldError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager("")
	mockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, mockNotifier)

	err := nm.RegisterNotification(SignupOtpNotice, EmailSystem, NoticeTemplate{
		Subject: "Your OTP",
		Text:    "Your OTP is: {{.Otp}}",
	})
	if err != nil {
		t.Fatalf("RegisterNotification failed: %v", err)
	}

	data := NotificationData{
		To:   "user@example.com",
		Data: map[string]string{"Otp": "123456"},
	}

	if err := nm.Send(SignupOtpNotice, data); err != nil {
		t.Errorf("Send failed: %v", err)
	}
	if len(mockNotifier.SentNotifications) != 1 {
		t.Errorf("Expected 1 sent notification, got %d", len(mockNotifier.SentNotifications))
	}

	// Unregistered notice type
	if err := nm.Send(PasswordResetNotice, data); err == nil {
		t.Error("Expected error for unregistered notice type")
	}

	// Registered template but no notifier for the system
	nm2 := NewNotificationManager("")
	_ = nm2.RegisterNotification(SignupOtpNotice, EmailSystem, NoticeTemplate{Subject: "x", Text: "y"})
	if err := nm2.Send(SignupOtpNotice, data); err == nil {
		t.Error("Expected error when no notifier is registered")
	}
}
