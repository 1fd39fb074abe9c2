package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/academylab/shared/events"
)

const (
	CourseCreated  = "course.created"
	CourseApproved = "course.approved"
)

const (
	CourseTopic         = "course"
	CourseAggregateType = "course"
)

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		CourseCreated: {
			Type:  reflect.TypeOf(sharedEvents.CourseCreated{}),
			Topic: CourseTopic,
		},
		CourseApproved: {
			Type:  reflect.TypeOf(sharedEvents.CourseApproved{}),
			Topic: CourseTopic,
		},
	}
}
