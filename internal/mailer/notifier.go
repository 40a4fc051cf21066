package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/onemarketph/backoffice/internal/workflow"
)

// StatusNotifier adapts the Mailer to the workflow notifier port.
type StatusNotifier struct {
	mailer *Mailer
}

func NewStatusNotifier(m *Mailer) *StatusNotifier {
	return &StatusNotifier{mailer: m}
}

// StatusChanged emails the affected party about their new status. Events
// without a recipient (e.g. vendor-facing changes routed elsewhere) are
// dropped without error.
func (n *StatusNotifier) StatusChanged(_ context.Context, ev workflow.StatusEvent) error {
	if ev.Recipient == "" {
		return nil
	}

	subject := fmt.Sprintf("Your %s application is now %s", ev.Entity, strings.ToLower(ev.Status))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello,\n\nThe status of your %s application has changed to: %s.\n", ev.Entity, ev.Status)
	if ev.Reason != "" {
		fmt.Fprintf(&sb, "\nReason: %s\n", ev.Reason)
	}
	sb.WriteString("\nIf you have questions, reply to this email.\n\n1 Market Philippines")

	return n.mailer.Send([]string{ev.Recipient}, subject, sb.String())
}
