package mail

import (
	"context"
	"fmt"

	"github.com/anima-music/anima/internal/env"
	gomail "github.com/wneessen/go-mail"
)

type smtpMailer struct {
	config env.MailerConfig
	client *gomail.Client
}

var _ Mailer = (*smtpMailer)(nil)

func NewSMTPMailer(config env.MailerConfig) (Mailer, error) {
	smtp := config.SmtpConfig
	opts := []gomail.Option{gomail.WithPort(smtp.Port)}
	if smtp.Username != "" || smtp.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(smtp.Username),
			gomail.WithPassword(smtp.Password),
		)
	}
	if smtp.ImplicitTLS {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	client, err := gomail.NewClient(smtp.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &smtpMailer{config: config, client: client}, nil
}

func (m *smtpMailer) Send(ctx context.Context, mail Mail) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.config.FromAddress); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(mail.To...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(mail.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, mail.TextBody)
	if mail.HtmlBody != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, mail.HtmlBody)
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
