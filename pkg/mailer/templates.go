package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
)

// Template names understood by the email worker.
const (
	TemplateVerifyEmail = "verify_email"
)

var verifyEmailTmpl = htmpl.Must(htmpl.New(TemplateVerifyEmail).Parse(`
<p>Hi {{.Username}},</p>
<p>Welcome to {{.AppName}}. Click the link below to verify your account:</p>
<p><a href="{{.VerifyLink}}">Verify your email</a></p>
<p>The link expires in {{.ExpiresIn}}. If you did not sign up, ignore this email.</p>
`))

// Render produces subject and HTML body for a named template.
func Render(template string, data map[string]any) (subject, html string, err error) {
	switch template {
	case TemplateVerifyEmail:
		var buf bytes.Buffer
		if err := verifyEmailTmpl.Execute(&buf, data); err != nil {
			return "", "", err
		}
		subject = "Verify Your Email"
		if resent, ok := data["Resent"].(bool); ok && resent {
			subject = "Verify Your Email (Resent)"
		}
		return subject, buf.String(), nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", template)
	}
}
