package mail

import (
	"embed"
	"fmt"
	html "html/template"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	resetCodeText = template.Must(template.New("reset_code.txt.tmpl").ParseFS(templatesFS, "templates/reset_code.txt.tmpl"))
	resetCodeHtml = html.Must(html.New("reset_code.html.tmpl").ParseFS(templatesFS, "templates/reset_code.html.tmpl"))
)

type resetCodeData struct {
	Code    string
	Minutes int
}

// NewPasswordResetMail renders the recovery code mail sent by forgot-password.
// The mail is in Spanish, matching the rest of the user-facing copy.
func NewPasswordResetMail(to string, code string, validFor time.Duration) (Mail, error) {
	data := resetCodeData{
		Code:    code,
		Minutes: int(validFor.Round(time.Minute) / time.Minute),
	}
	var textBody, htmlBody strings.Builder
	if err := resetCodeText.Execute(&textBody, data); err != nil {
		return Mail{}, fmt.Errorf("failed to render mail template: %w", err)
	}
	if err := resetCodeHtml.Execute(&htmlBody, data); err != nil {
		return Mail{}, fmt.Errorf("failed to render mail template: %w", err)
	}
	return Mail{
		To:       []string{to},
		Subject:  "Recuperación de contraseña – Ánima",
		TextBody: textBody.String(),
		HtmlBody: htmlBody.String(),
	}, nil
}
