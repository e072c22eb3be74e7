package notify

import (
	"log"
	"regexp"
)

// recipientRe accepts US-style numbers only: +1 followed by ten digits.
var recipientRe = regexp.MustCompile(`^\+1\d{10}$`)

// Transport delivers one outbound message.
type Transport interface {
	Send(to, from, body string) error
}

// Notifier fans one formatted message out to a validated recipient set
// with a fixed sender identity.
type Notifier struct {
	transport  Transport
	from       string
	recipients []string
}

// NewNotifier creates a notifier for the given recipient set
func NewNotifier(transport Transport, from string, recipients []string) *Notifier {
	return &Notifier{transport: transport, from: from, recipients: recipients}
}

// ValidRecipient reports whether the number may receive notifications.
func ValidRecipient(number string) bool {
	return recipientRe.MatchString(number)
}

// Send delivers the message to every valid recipient. A failed delivery
// is logged and does not stop the remaining deliveries.
func (n *Notifier) Send(message string) {
	for _, number := range n.recipients {
		if !ValidRecipient(number) {
			continue
		}
		if err := n.transport.Send(number, n.from, message); err != nil {
			log.Printf("Failed to notify %s: %v", number, err)
		}
	}
}
