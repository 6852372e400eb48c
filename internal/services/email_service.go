package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/unimatch/campus-platform/internal/config"
	"github.com/unimatch/campus-platform/internal/models"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{config: cfg}
}

// EmailData contains common email template data
type EmailData struct {
	AppName     string
	AppURL      string
	UserName    string
	Subject     string
	Content     template.HTML
	ActionURL   string
	ActionLabel string
}

// BaseEmailTemplate is the base HTML email template
const BaseEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4f46e5; color: white; padding: 24px; text-align: center; border-radius: 8px 8px 0 0; }
        .content { background: #f9f9f9; padding: 24px; border-radius: 0 0 8px 8px; }
        .button { display: inline-block; background: #4f46e5; color: white; padding: 12px 28px; text-decoration: none; border-radius: 6px; margin: 16px 0; }
        .footer { text-align: center; color: #888; font-size: 12px; margin-top: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>{{.AppName}}</h1></div>
        <div class="content">
            <p>Hi {{.UserName}},</p>
            {{.Content}}
            {{if .ActionURL}}
            <p style="text-align: center;">
                <a href="{{.ActionURL}}" class="button">{{.ActionLabel}}</a>
            </p>
            {{end}}
        </div>
        <div class="footer">
            <p>&copy; {{.AppName}}. This is an automated message.</p>
        </div>
    </div>
</body>
</html>
`

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to, subject, body string) error {
	if s.config.SMTPHost == "" {
		// Log email instead of sending in development
		fmt.Printf("\n=== EMAIL ===\nTo: %s\nSubject: %s\nBody: %s\n=============\n", to, subject, body)
		return nil
	}

	from := s.config.FromEmail
	auth := smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		from, to, subject)

	msg := []byte(headers + body)

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}

// renderEmail renders an email using the base template
func (s *EmailService) renderEmail(data EmailData) (string, error) {
	data.AppName = s.config.AppName
	data.AppURL = s.config.AppURL

	tmpl, err := template.New("email").Parse(BaseEmailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// SendVerificationEmail sends an email verification link
func (s *EmailService) SendVerificationEmail(user *models.User) error {
	data := EmailData{
		UserName:    user.Name,
		Subject:     "Verify your email address",
		Content:     template.HTML("<p>Thanks for joining " + s.config.AppName + ". Please verify your email address to start finding teammates.</p>"),
		ActionURL:   fmt.Sprintf("%s/verify-email?token=%s", s.config.AppURL, user.VerifyToken),
		ActionLabel: "Verify Email",
	}

	body, err := s.renderEmail(data)
	if err != nil {
		return err
	}
	return s.sendEmail(user.Email, data.Subject, body)
}

// SendInvitationEmail notifies a user that a team has invited them
func (s *EmailService) SendInvitationEmail(to *models.User, inv *models.Invitation) error {
	content := fmt.Sprintf("<p><strong>%s</strong> has invited you to join the team <strong>%s</strong>. Open your invitations to accept or decline.</p>",
		template.HTMLEscapeString(inv.FromUserName), template.HTMLEscapeString(inv.TeamName))

	data := EmailData{
		UserName:    to.Name,
		Subject:     fmt.Sprintf("You've been invited to join %s", inv.TeamName),
		Content:     template.HTML(content),
		ActionURL:   fmt.Sprintf("%s/invitations", s.config.AppURL),
		ActionLabel: "View Invitation",
	}

	body, err := s.renderEmail(data)
	if err != nil {
		return err
	}
	return s.sendEmail(to.Email, data.Subject, body)
}
