package email

import (
	"bytes"
	"fmt"
	"go-totl-backend/config"
	"html/template"
	"net/smtp"
)

// Service sends transactional emails via SMTP
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// TemplateKind identifies one of the transactional email templates
type TemplateKind string

const (
	TemplateWelcome             TemplateKind = "welcome"
	TemplateApplicationReceived TemplateKind = "application_received"
	TemplateBookingConfirmed    TemplateKind = "booking_confirmed"
)

// TemplateData holds the fields the templates interpolate
type TemplateData struct {
	RecipientName string
	GigTitle      string
	CompanyName   string
	ActionURL     string
}

// NewService creates an email service with Brevo SMTP configuration
func NewService(cfg *config.Config) *Service {
	return &Service{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const baseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #111; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; background: #111; color: white; padding: 12px 24px; text-decoration: none; margin-top: 15px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>{{.Subject}}</h1></div>
        <div class="content">
            {{.Body}}
            {{if .ActionURL}}<a class="button" href="{{.ActionURL}}">Open TOTL</a>{{end}}
        </div>
        <div class="footer"><p>Sent by TOTL — the talent and casting platform.</p></div>
    </div>
</body>
</html>`

type renderedEmail struct {
	Subject   string
	Body      template.HTML
	ActionURL string
}

func render(kind TemplateKind, data TemplateData) (*renderedEmail, error) {
	switch kind {
	case TemplateWelcome:
		return &renderedEmail{
			Subject: "Welcome to TOTL",
			Body: template.HTML(fmt.Sprintf(
				"<p>Hi %s,</p><p>Your account is ready. Complete your profile to start getting matched with gigs.</p>",
				template.HTMLEscapeString(data.RecipientName))),
			ActionURL: data.ActionURL,
		}, nil
	case TemplateApplicationReceived:
		return &renderedEmail{
			Subject: "New application received",
			Body: template.HTML(fmt.Sprintf(
				"<p>Hi %s,</p><p>%s applied to your gig <strong>%s</strong>.</p>",
				template.HTMLEscapeString(data.CompanyName),
				template.HTMLEscapeString(data.RecipientName),
				template.HTMLEscapeString(data.GigTitle))),
			ActionURL: data.ActionURL,
		}, nil
	case TemplateBookingConfirmed:
		return &renderedEmail{
			Subject: "Booking confirmed",
			Body: template.HTML(fmt.Sprintf(
				"<p>Hi %s,</p><p>Your booking for <strong>%s</strong> with %s is confirmed.</p>",
				template.HTMLEscapeString(data.RecipientName),
				template.HTMLEscapeString(data.GigTitle),
				template.HTMLEscapeString(data.CompanyName))),
			ActionURL: data.ActionURL,
		}, nil
	}
	return nil, fmt.Errorf("unknown email template: %s", kind)
}

// Send renders the named template and delivers it to the recipient
func (s *Service) Send(kind TemplateKind, to string, data TemplateData) error {
	rendered, err := render(kind, data)
	if err != nil {
		return err
	}

	tmpl, err := template.New("email").Parse(baseTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, rendered); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		rendered.Subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the service has valid SMTP configuration
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
