package notifications

import "context"

const DefaultSubject = "Your Daily Motivation"

type SendMotivationInput struct {
	To      string
	Subject string
	Body    string // plain text; rendered to HTML by the sender
}

type Notifier interface {
	SendMotivation(ctx context.Context, input SendMotivationInput) error
}
