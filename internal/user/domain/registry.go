package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/academylab/shared/events"
)

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	UserRegistered = "user.registered"
	UserVerified   = "user.verified"
)

const (
	UserTopic         = "user"
	UserAggregateType = "user"
)

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		UserRegistered: {
			Type:  reflect.TypeOf(sharedEvents.UserRegistered{}),
			Topic: UserTopic,
		},
		UserVerified: {
			Type:  reflect.TypeOf(sharedEvents.UserVerified{}),
			Topic: UserTopic,
		},
	}
}
