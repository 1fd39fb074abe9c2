package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"` // contenido específico del evento

	// Topic no viaja en el mensaje, lo usa el publisher para enrutar.
	Topic string `json:"-"`
}

// PartitionKey agrupa los eventos de un mismo agregado en la misma partición.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}

func (e IntegrationEvent) TopicName() string {
	return e.Topic
}

type EventMetadata struct {
	Type  reflect.Type
	Topic string
}
