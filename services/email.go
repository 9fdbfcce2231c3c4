package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	baseURL      string

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

const welcomeTemplate = `<html><body>
<h2>Welcome to CookHound, {{.Username}}!</h2>
<p>Your account is ready. Start browsing recipes at <a href="{{.BaseURL}}">{{.BaseURL}}</a>.</p>
</body></html>`

const passwordResetTemplate = `<html><body>
<h2>Password reset</h2>
<p>Hi {{.Username}}, use this code to reset your password: <strong>{{.Code}}</strong></p>
<p>The code expires in 15 minutes. If you didn't request a reset, ignore this email.</p>
</body></html>`

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")
	svc.baseURL = os.Getenv("BASE_URL")

	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "CookHound"
	}
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	svc.templates = make(map[string]*template.Template)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	var err error
	svc.templates["welcome"], err = template.New("welcome").Parse(welcomeTemplate)
	if err != nil {
		return err
	}
	svc.templates["password_reset"], err = template.New("password_reset").Parse(passwordResetTemplate)
	if err != nil {
		return err
	}
	return nil
}

func (svc *EmailService) SendWelcomeEmail(toEmail, username string) error {
	return svc.send(toEmail, "Welcome to CookHound", "welcome", map[string]string{
		"Username": username,
		"BaseURL":  svc.baseURL,
	})
}

func (svc *EmailService) SendPasswordResetEmail(toEmail, username, code string) error {
	return svc.send(toEmail, "CookHound password reset", "password_reset", map[string]string{
		"Username": username,
		"Code":     code,
	})
}

func (svc *EmailService) send(toEmail, subject, templateName string, data map[string]string) error {
	if svc.smtpHost == "" {
		// No mail driver configured; common in local development.
		log.WithFields(log.Fields{"to": toEmail, "template": templateName}).
			Info("SMTP not configured, skipping email")
		return nil
	}

	tmpl, ok := svc.templates[templateName]
	if !ok {
		return fmt.Errorf("unknown email template %q", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering email template %q: %w", templateName, err)
	}

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", svc.fromName, svc.fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)
	addr := svc.smtpHost + ":" + svc.smtpPort

	if err := smtp.SendMail(addr, auth, svc.fromEmail, []string{toEmail}, msg.Bytes()); err != nil {
		return fmt.Errorf("sending email to %s: %w", toEmail, err)
	}

	return nil
}
