package notifications

import (
	"context"
	"fmt"

	"github.com/Shuaibullattil/daily-motivation/internal/observability"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // also used as the From address
	Password string
}

// SMTPNotifier sends through an authenticated STARTTLS session. One dial per send, no retry.
type SMTPNotifier struct {
	cfg  SMTPConfig
	prom *observability.Prom

	// overridable in tests
	newClient func(cfg SMTPConfig) (mailClient, error)
}

type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

func NewSMTPNotifier(cfg SMTPConfig, prom *observability.Prom) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:       cfg,
		prom:      prom,
		newClient: dialClient,
	}
}

func (n *SMTPNotifier) SendMotivation(ctx context.Context, in SendMotivationInput) error {
	err := n.send(ctx, in)

	if err != nil {
		n.prom.ObserveEmail(observability.EmailFailed)
		return err
	}
	n.prom.ObserveEmail(observability.EmailSent)
	return nil
}

func (n *SMTPNotifier) send(ctx context.Context, in SendMotivationInput) error {
	msg, err := BuildMessage(n.cfg.Username, in)
	if err != nil {
		return err
	}

	client, err := n.newClient(n.cfg)
	if err != nil {
		return fmt.Errorf("smtp: create client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: send to %s: %w", in.To, err)
	}
	return nil
}

// BuildMessage assembles a multipart/alternative message with text and HTML parts.
func BuildMessage(from string, in SendMotivationInput) (*mail.Msg, error) {
	subject := in.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("smtp: invalid from address %q: %w", from, err)
	}
	if err := msg.To(in.To); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient %q: %w", in.To, err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, MotivationEmailText(in.Body))
	msg.AddAlternativeString(mail.TypeTextHTML, MotivationEmailHTML(in.Body))

	return msg, nil
}

func dialClient(cfg SMTPConfig) (mailClient, error) {
	c, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
