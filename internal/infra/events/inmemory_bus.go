package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/academylab/shared/platform/bus"
)

// InMemoryEventBus reparte eventos por topic usando canales de Go.
// Sustituye a Kafka en local: mismo formato de mensaje, sin broker.
type InMemoryEventBus struct {
	subscribers map[string][]chan []byte
	mu          sync.RWMutex
}

var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{subscribers: make(map[string][]chan []byte)}
}

// Publish serializa el evento y lo entrega a los suscriptores de su topic.
// Un suscriptor con el buffer lleno pierde el mensaje; el bus nunca bloquea.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := ""
	if t, ok := event.(sharedBus.Topicer); ok {
		topic = t.TopicName()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers[topic] {
		select {
		case sub <- payload:
		default:
		}
	}
	return nil
}

// Subscribe suscribe un nuevo oyente a un topic.
func (b *InMemoryEventBus) Subscribe(topic string, bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []byte, bufferSize)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch
}

// BackgroundConsumerChan entrega cada mensaje del canal al handler hasta que
// se cancele el contexto.
func BackgroundConsumerChan(ctx context.Context, ch <-chan []byte, handler MessageHandler) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload := <-ch:
				handler.HandleMessage(ctx, "", payload)
			}
		}
	}()
}
