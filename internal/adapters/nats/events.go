package natsadapter

import (
	"context"
	"encoding/json"

	nats "github.com/nats-io/nats.go"

	"github.com/example/user-service/internal/domain"
)

// EventsClient publishes user lifecycle events. Fire-and-forget: consumers
// that care about ordering or delivery use their own durable subscriptions.
type EventsClient struct {
	conn           *nats.Conn
	createdSubject string
	deletedSubject string
}

func NewEventsClient(conn *nats.Conn, createdSubject, deletedSubject string) *EventsClient {
	return &EventsClient{conn: conn, createdSubject: createdSubject, deletedSubject: deletedSubject}
}

func (c *EventsClient) UserCreated(ctx context.Context, user *domain.PublicUser) error {
	payload := map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}
	return c.publish(c.createdSubject, payload)
}

func (c *EventsClient) UserDeleted(ctx context.Context, id uint) error {
	return c.publish(c.deletedSubject, map[string]interface{}{"id": id})
}

func (c *EventsClient) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.conn.Publish(subject, data)
}
