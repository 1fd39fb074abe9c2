package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/academylab/shared/events"
)

const (
	BatchCreated       = "batch.created"
	BatchStatusChanged = "batch.status_changed"
)

const (
	BatchTopic         = "batch"
	BatchAggregateType = "batch"
)

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		BatchCreated: {
			Type:  reflect.TypeOf(sharedEvents.BatchCreated{}),
			Topic: BatchTopic,
		},
		BatchStatusChanged: {
			Type:  reflect.TypeOf(sharedEvents.BatchStatusChanged{}),
			Topic: BatchTopic,
		},
	}
}
