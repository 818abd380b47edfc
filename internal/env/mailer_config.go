package env

import "fmt"

type MailerType string

const (
	MailerTypeUnspecified MailerType = ""
	MailerTypeSMTP        MailerType = "smtp"
	MailerTypeSES         MailerType = "ses"
)

func parseMailerType(value string) (MailerType, error) {
	switch MailerType(value) {
	case MailerTypeUnspecified, MailerTypeSMTP, MailerTypeSES:
		return MailerType(value), nil
	default:
		return MailerTypeUnspecified, fmt.Errorf("invalid MailerType: %v", value)
	}
}

type MailerConfig struct {
	Type        MailerType
	FromAddress string
	SmtpConfig  *MailerSMTPConfig
}

type MailerSMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	ImplicitTLS bool
}
