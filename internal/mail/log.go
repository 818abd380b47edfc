package mail

import (
	"context"

	"go.uber.org/zap"
)

type logMailer struct {
	logger *zap.Logger
}

var _ Mailer = (*logMailer)(nil)

func NewLogMailer(logger *zap.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, mail Mail) error {
	m.logger.Info("mail not sent (no mailer configured)",
		zap.Strings("to", mail.To),
		zap.String("subject", mail.Subject),
		zap.String("body", mail.TextBody))
	return nil
}
