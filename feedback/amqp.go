package feedback

import (
	"context"
	"encoding/json"

	"github.com/cyverse-de/messaging/v9"
	"github.com/cyverse-de/notification-preferences/common"
	"github.com/pkg/errors"
)

// Publisher describes the parts of messaging.Client that are needed to publish feedback messages.
type Publisher interface {
	PublishContext(ctx context.Context, key string, body []byte) error
}

// AMQP is a Notifier that publishes feedback messages to the DE exchange so that they can be relayed to
// the user's browser.
type AMQP struct {
	publisher  Publisher
	routingKey string
	client     *messaging.Client
}

// NewAMQP returns a Notifier that publishes with the given routing key using the given publisher.
func NewAMQP(publisher Publisher, routingKey string) *AMQP {
	return &AMQP{publisher: publisher, routingKey: routingKey}
}

// DialAMQP creates a messaging client, sets it up to publish to the configured exchange and returns a
// Notifier that uses it.
func DialAMQP(settings *common.AMQPSettings) (*AMQP, error) {
	wrapMsg := "unable to set up the AMQP feedback publisher"

	// Create the AMQP client.
	client, err := messaging.NewClient(settings.URI, false)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Prepare the client for publishing.
	if err = client.SetupPublishing(settings.ExchangeName); err != nil {
		client.Close()
		return nil, errors.Wrap(err, wrapMsg)
	}

	notifier := NewAMQP(client, settings.RoutingKey)
	notifier.client = client
	return notifier, nil
}

// Notify publishes the message as JSON.
func (a *AMQP) Notify(ctx context.Context, msg Message) error {
	wrapMsg := "unable to publish the feedback message"

	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	if err = a.publisher.PublishContext(ctx, a.routingKey, body); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// Close closes the messaging client, if there is one.
func (a *AMQP) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
