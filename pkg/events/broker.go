package events

import (
	"fmt"
	"io"
)

// NewBroker returns the publisher configured by BROKER/BROKER_URL and a closer.
func NewBroker(kind, url string) (Publisher, io.Closer, error) {
	switch kind {
	case "", "none":
		return Noop{}, io.NopCloser(nil), nil
	case "amqp":
		p, err := NewAMQPPublisher(url)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case "nats":
		p, err := NewNATSPublisher(url)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	}
	return nil, nil, fmt.Errorf("unsupported BROKER %q", kind)
}
