package mail

import (
	"context"
	"fmt"

	"github.com/anima-music/anima/internal/env"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesMailer struct {
	config env.MailerConfig
	client *ses.Client
}

var _ Mailer = (*sesMailer)(nil)

func NewSESMailerFromContext(ctx context.Context, mailerConfig env.MailerConfig) (Mailer, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(env.AWSRegion()))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &sesMailer{config: mailerConfig, client: ses.NewFromConfig(awsConfig)}, nil
}

func (m *sesMailer) Send(ctx context.Context, mail Mail) error {
	body := sestypes.Body{
		Text: &sestypes.Content{Data: aws.String(mail.TextBody), Charset: aws.String("UTF-8")},
	}
	if mail.HtmlBody != "" {
		body.Html = &sestypes.Content{Data: aws.String(mail.HtmlBody), Charset: aws.String("UTF-8")}
	}
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.config.FromAddress),
		Destination: &sestypes.Destination{ToAddresses: mail.To},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(mail.Subject), Charset: aws.String("UTF-8")},
			Body:    &body,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send mail via SES: %w", err)
	}
	return nil
}
