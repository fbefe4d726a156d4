package notification

import "errors"

type MockNotifier struct {
	SentNotifications []NotificationData
	FailNext          bool
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	if m.FailNext {
		m.FailNext = false
		return errors.New("mock delivery failure")
	}
	m.SentNotifications = append(m.SentNotifications, notification)
	return nil
}
