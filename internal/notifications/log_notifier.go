package notifications

import (
	"context"
	"log/slog"
)

// LogNotifier writes the email to the log instead of sending it (dry runs).
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendMotivation(ctx context.Context, in SendMotivationInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.log.InfoContext(ctx, "notification.motivation",
		"to", in.To,
		"subject", in.Subject,
		"body", in.Body,
	)
	return nil
}
