package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	courseDomain "github.com/davicafu/academylab/internal/course/domain"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

const approvedSubject = "Your course has been approved"

// UserReader es lo único que el consumidor necesita de los usuarios.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// CourseConsumer avisa al instructor cuando su curso se aprueba.
type CourseConsumer struct {
	users   UserReader
	mailer  sharedMail.Sender
	timeout time.Duration
	log     *zap.Logger
}

func NewCourseConsumer(users UserReader, mailer sharedMail.Sender, log *zap.Logger) *CourseConsumer {
	return &CourseConsumer{users: users, mailer: mailer, timeout: 5 * time.Second, log: log}
}

func (c *CourseConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case courseDomain.CourseApproved:
		sharedUtils.UnmarshalAndHandle[sharedEvents.CourseApproved](c.log, base.Data, func(evt sharedEvents.CourseApproved) {
			ctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			if err := c.notifyInstructor(ctx, evt); err != nil {
				c.log.Warn("Failed to process course event",
					zap.String("course_id", evt.ID.String()),
					zap.Error(err),
				)
				return
			}
			c.log.Info("📧 Course approval mail sent", zap.String("course_id", evt.ID.String()))
		})

	case courseDomain.CourseCreated:
		c.log.Debug("Course created", zap.String("aggregate_id", base.AggregateID))

	default:
		c.log.Warn("Unknown event type", zap.String("type", base.Type))
	}
}

func (c *CourseConsumer) notifyInstructor(ctx context.Context, evt sharedEvents.CourseApproved) error {
	instructor, err := c.users.GetByID(ctx, evt.InstructorID)
	if err != nil {
		return err
	}
	return c.mailer.Send(ctx, sharedMail.Message{
		To:       instructor.Email,
		Subject:  approvedSubject,
		Template: sharedMail.TemplateCourseApproved,
		Data:     map[string]string{"name": instructor.FirstName, "title": evt.Title},
	})
}
