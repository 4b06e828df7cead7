package email

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
)

// Service sends notification emails via SMTP.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// Config holds the SMTP settings for the notification service.
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	ToEmail   string
}

func NewService(cfg Config) *Service {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &Service{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
		toEmail:   cfg.ToEmail,
	}
}

// ApplicationEmailData holds the data for new-application notifications.
type ApplicationEmailData struct {
	Name  string
	Email string
	Phone string
	Role  string
}

const applicationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Новая заявка</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1a1a2e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Новая заявка в команду</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Имя:</div>
                <div class="value">{{.Name}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value">{{.Email}}</div>
            </div>
            <div class="field">
                <div class="label">Телефон:</div>
                <div class="value">{{.Phone}}</div>
            </div>
            <div class="field">
                <div class="label">Роль:</div>
                <div class="value">{{.Role}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Полный текст заявки доступен в панели администратора.</p>
        </div>
    </div>
</body>
</html>`

// SendApplicationNotification notifies the studio inbox about a new
// job application.
func (s *Service) SendApplicationNotification(data ApplicationEmailData) error {
	tmpl, err := template.New("application").Parse(applicationEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := encodeSubject(fmt.Sprintf("Новая заявка: %s (%s)", data.Name, data.Role))

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		data.Email,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// encodeSubject wraps non-ASCII subjects in an RFC 2047 encoded word so
// mail clients render the Cyrillic text instead of mangling it.
func encodeSubject(subject string) string {
	return mime.QEncoding.Encode("utf-8", subject)
}

// IsConfigured checks if the service has valid SMTP configuration.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
