package smtp

import (
	"context"
	"fmt"
	html "html/template"
	"strings"
	text "text/template"

	"freight/internal/core/ports"
)

// EmailNotifier renders and dispatches the four workflow emails. Subjects
// and bodies are in Italian, matching the audience of the service.
type EmailNotifier struct {
	sender Sender
	html   *html.Template
	text   *text.Template
}

// NewEmailNotifier creates a notifier over the given sender.
func NewEmailNotifier(sender Sender) (*EmailNotifier, error) {
	htmlTemplates, err := html.New("email").Parse(htmlTemplateSet)
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	textTemplates, err := text.New("email").Parse(textTemplateSet)
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}

	return &EmailNotifier{
		sender: sender,
		html:   htmlTemplates,
		text:   textTemplates,
	}, nil
}

// SendInvitation emails the response link for a new invitation.
func (n *EmailNotifier) SendInvitation(ctx context.Context, notice ports.InvitationNotice) error {
	subject := fmt.Sprintf("Richiesta di preventivo trasporto %s", notice.RequestCode)
	return n.send(ctx, notice.To, subject, "invitation", notice)
}

// SendConfirmation emails a carrier that its offer has been confirmed.
func (n *EmailNotifier) SendConfirmation(ctx context.Context, notice ports.ConfirmationNotice) error {
	subject := fmt.Sprintf("Conferma incarico trasporto %s", notice.RequestCode)
	return n.send(ctx, notice.To, subject, "confirmation", notice)
}

// SendCancellation emails a carrier that its confirmed offer was withdrawn.
func (n *EmailNotifier) SendCancellation(ctx context.Context, notice ports.CancellationNotice) error {
	subject := fmt.Sprintf("Annullamento incarico trasporto %s", notice.RequestCode)
	return n.send(ctx, notice.To, subject, "cancellation", notice)
}

// SendReminder emails a carrier that has not yet responded.
func (n *EmailNotifier) SendReminder(ctx context.Context, notice ports.ReminderNotice) error {
	subject := fmt.Sprintf("Sollecito: richiesta di preventivo %s", notice.RequestCode)
	return n.send(ctx, notice.To, subject, "reminder", notice)
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, template string, data any) error {
	var htmlBody strings.Builder
	if err := n.html.ExecuteTemplate(&htmlBody, template, data); err != nil {
		return fmt.Errorf("render html %s: %w", template, err)
	}

	var textBody strings.Builder
	if err := n.text.ExecuteTemplate(&textBody, template, data); err != nil {
		return fmt.Errorf("render text %s: %w", template, err)
	}

	return n.sender.Send(ctx, to, subject, htmlBody.String(), textBody.String())
}
