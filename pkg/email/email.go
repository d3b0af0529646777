package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	sendMail  func(addr string, a sasl.Client, from string, to []string, msg []byte) error
}

// Field is one labelled line in the message body.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Message is a simple transactional mail: greeting, intro, labelled fields and a
// closing salutation.
type Message struct {
	To         []string `json:"to"`
	Subject    string   `json:"subject"`
	Greeting   string   `json:"greeting"`
	Intro      string   `json:"intro"`
	Fields     []Field  `json:"fields"`
	Salutation string   `json:"salutation"`
}

type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

func NewEmailService(cfg SMTPConfig) *EmailService {
	return &EmailService{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: cfg.FromEmail,
		sendMail: func(addr string, a sasl.Client, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, a, from, to, bytes.NewReader(msg))
		},
	}
}

const messageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; }
        .footer { padding: 20px 0; color: #888; }
    </style>
</head>
<body>
    <div class="container">
        <div class="content">
            <h2>{{.Greeting}}</h2>
            <p>{{.Intro}}</p>
            {{range .Fields}}<p><span class="label">{{.Label}}:</span> {{.Value}}</p>
            {{end}}
        </div>
        <div class="footer">{{.Salutation}}</div>
    </div>
</body>
</html>`

var tmpl = template.Must(template.New("message").Parse(messageTemplate))

// Render produces the HTML body of msg.
func Render(msg Message) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, msg); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// Build assembles the full MIME message.
func (s *EmailService) Build(msg Message) ([]byte, error) {
	body, err := Render(msg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), s.host)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// Send delivers msg to its recipients.
func (s *EmailService) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := s.Build(msg)
	if err != nil {
		return err
	}

	var auth sasl.Client
	if s.username != "" {
		auth = sasl.NewPlainClient("", s.username, s.password)
	}

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, s.fromEmail, msg.To, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured reports whether an SMTP relay is set
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.port != "" && s.fromEmail != ""
}
