package mail

import (
	"context"
	"fmt"

	"github.com/anima-music/anima/internal/env"
	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type Mail struct {
	To       []string
	Subject  string
	TextBody string
	HtmlBody string
}

// NewMailer builds the Mailer selected via MAILER_TYPE. When no mailer is
// configured, outgoing mail is written to the log instead, which keeps local
// development working without an SMTP server or AWS credentials.
func NewMailer(ctx context.Context, logger *zap.Logger) (Mailer, error) {
	config := env.GetMailerConfig()
	switch config.Type {
	case env.MailerTypeSMTP:
		return NewSMTPMailer(config)
	case env.MailerTypeSES:
		return NewSESMailerFromContext(ctx, config)
	case env.MailerTypeUnspecified:
		logger.Warn("no mailer configured, outgoing mail will be logged")
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unsupported mailer type: %v", config.Type)
	}
}
