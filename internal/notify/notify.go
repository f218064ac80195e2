// Package notify delivers settlement notices to members. The engine only
// depends on the Notifier contract; the shipped implementation publishes the
// notice to an AMQP queue drained by an external mail sender. Delivery is
// fire-and-forget: the engine performs no retries, that policy belongs to
// the consumer of the queue.
package notify

import (
	"context"
	"fmt"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

// Notifier is the outbound notification contract: a recipient address, a
// human-readable subject, and a message body.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Nop discards every notice. Used when no notification channel is
// configured.
type Nop struct{}

// Send implements Notifier by doing nothing.
func (Nop) Send(ctx context.Context, recipient, subject, body string) error {
	return nil
}

// SettlementNotice builds the subject and body for one transfer, addressed
// to the debtor.
func SettlementNotice(t models.Transfer, from, to models.Member) (subject, body string) {
	amount := money.FormatCents(t.AmountCents)
	subject = fmt.Sprintf("Settle up: you owe %s to %s", amount, to.Name)
	body = fmt.Sprintf(
		"Hi %s,\n\nTo settle the shared expenses, please pay %s to %s.\n\nThanks!\n",
		from.Name, amount, to.Name,
	)
	return subject, body
}
