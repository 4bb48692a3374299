package motivation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/notifications"
)

type ProfileReader interface {
	Get(ctx context.Context) (profile.Profile, error)
}

type MessageGenerator interface {
	Generate(ctx context.Context, p profile.Profile) string
}

type Result struct {
	Message string
	SentTo  string
}

// Dispatcher runs the load, generate, email pipeline for the stored profile.
type Dispatcher struct {
	profiles  ProfileReader
	generator MessageGenerator
	notifier  notifications.Notifier
	recipient string
	log       *slog.Logger
}

func NewDispatcher(profiles ProfileReader, generator MessageGenerator, notifier notifications.Notifier, recipient string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		profiles:  profiles,
		generator: generator,
		notifier:  notifier,
		recipient: recipient,
		log:       log,
	}
}

func (d *Dispatcher) Recipient() string { return d.recipient }

// Preview generates a cleaned message without sending it.
// Returns profile.ErrNotFound or profile.ErrNoAbout when the profile cannot be used.
func (d *Dispatcher) Preview(ctx context.Context) (string, error) {
	p, err := d.profiles.Get(ctx)
	if err != nil {
		return "", err
	}
	if _, err := p.RequireAbout(); err != nil {
		return "", err
	}

	return CleanMessage(d.generator.Generate(ctx, p)), nil
}

// Send generates a message and emails it to the configured recipient.
func (d *Dispatcher) Send(ctx context.Context) (Result, error) {
	return d.SendTo(ctx, d.recipient)
}

func (d *Dispatcher) SendTo(ctx context.Context, to string) (Result, error) {
	msg, err := d.Preview(ctx)
	if err != nil {
		return Result{}, err
	}

	err = d.notifier.SendMotivation(ctx, notifications.SendMotivationInput{
		To:      to,
		Subject: notifications.DefaultSubject,
		Body:    msg,
	})
	if err != nil {
		return Result{}, fmt.Errorf("send motivation email: %w", err)
	}

	d.log.InfoContext(ctx, "motivation sent", "to", to)
	return Result{Message: msg, SentTo: to}, nil
}
