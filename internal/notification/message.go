// Package notification announces new contacts to the operator mailbox. The
// Dispatcher only enqueues; the Worker does the actual SMTP delivery.
package notification

import (
	"time"

	"github.com/google/uuid"

	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/email"
)

const (
	DefaultQueue = "back_emails"

	JobContactCreated = "contact_created"

	subjectContactCreated = "Novo contato cadastrado"
)

// Job is the envelope stored on the queue.
type Job struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Attempts  int           `json:"attempts"`
	CreatedAt time.Time     `json:"created_at"`
	LastError string        `json:"last_error,omitempty"`
	Message   email.Message `json:"message"`
}

func newJob(kind string, msg email.Message) Job {
	return Job{
		ID:        uuid.NewString(),
		Type:      kind,
		CreatedAt: time.Now().UTC(),
		Message:   msg,
	}
}

// ContactCreatedMessage summarizes c for the operator.
func ContactCreatedMessage(operator string, c *domain.Contact) email.Message {
	return email.Message{
		To:       []string{operator},
		Subject:  subjectContactCreated,
		Greeting: "Olá!",
		Intro:    "Um novo contato foi cadastrado no sistema.",
		Fields: []email.Field{
			{Label: "Nome", Value: c.Nome},
			{Label: "E-mail", Value: c.Email},
			{Label: "Telefone", Value: value(c.Telefone)},
			{Label: "Cidade", Value: value(c.Cidade)},
			{Label: "Estado", Value: value(c.Estado)},
		},
		Salutation: "Atenciosamente, Equipe de Contatos",
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
