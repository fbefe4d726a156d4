package notification

type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	Subject string            // Optional: overrides the template subject when set
	Body    string            // The content or message to send
	Data    map[string]string // Template data (e.g., Otp, ResetLink, FirstName)
}

// NoticeTemplate holds the subject and body templates for a notice type.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
