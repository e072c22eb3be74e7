package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioTransport sends SMS messages through the Twilio REST API.
type TwilioTransport struct {
	client *twilio.RestClient
}

// NewTwilioTransport creates a transport from account credentials
func NewTwilioTransport(accountSID, authToken string) *TwilioTransport {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioTransport{client: client}
}

// Send delivers one SMS message.
func (t *TwilioTransport) Send(to, from, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
