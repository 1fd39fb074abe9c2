package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

const welcomeSubject = "Welcome to Future Programmer Innovators Club"

// UserConsumer reacciona a los eventos del topic user enviando correos.
type UserConsumer struct {
	mailer  sharedMail.Sender
	timeout time.Duration
	log     *zap.Logger
}

func NewUserConsumer(mailer sharedMail.Sender, log *zap.Logger) *UserConsumer {
	return &UserConsumer{
		mailer:  mailer,
		timeout: 5 * time.Second,
		log:     log,
	}
}

func (c *UserConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case userDomain.UserRegistered:
		sharedUtils.UnmarshalAndHandle[sharedEvents.UserRegistered](c.log, base.Data, func(evt sharedEvents.UserRegistered) {
			c.withContext(ctx, func(ctx context.Context) error {
				return c.mailer.Send(ctx, sharedMail.Message{
					To:       evt.Email,
					Subject:  welcomeSubject,
					Template: sharedMail.TemplateWelcome,
					Data:     map[string]string{"name": evt.FirstName},
				})
			}, "📧 Welcome mail sent", evt.ID.String())
		})

	case userDomain.UserVerified:
		// sin correo asociado
		c.log.Debug("User verified", zap.String("aggregate_id", base.AggregateID))

	default:
		c.log.Warn("Unknown event type", zap.String("type", base.Type))
	}
}

// withContext ejecuta la acción con un timeout propio y deja constancia en el log.
// Un fallo no se reintenta: el evento ya salió del outbox.
func (c *UserConsumer) withContext(ctx context.Context, action func(ctx context.Context) error, successMsg, userID string) {
	ctxUser, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := action(ctxUser); err != nil {
		c.log.Warn("Failed to process user event", zap.String("user_id", userID), zap.Error(err))
		return
	}
	c.log.Info(successMsg, zap.String("user_id", userID))
}
