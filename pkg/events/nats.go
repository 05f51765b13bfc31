package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const NATSSubjectPrefix = "pos.events."

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("pos"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, ev Event) error {
	subject, body, err := natsMessage(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, body)
}

// natsMessage puts each event type on its own subject, e.g. pos.events.bill.paid.
func natsMessage(ev Event) (string, []byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return "", nil, fmt.Errorf("marshal event: %w", err)
	}
	return NATSSubjectPrefix + ev.Type, body, nil
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
