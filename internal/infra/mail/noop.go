package mail

import (
	"context"

	"go.uber.org/zap"

	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
)

// NoopSender renderiza y registra el correo sin enviarlo. Para desarrollo.
type NoopSender struct {
	log *zap.Logger
}

var _ sharedMail.Sender = (*NoopSender)(nil)

func NewNoopSender(log *zap.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) Send(_ context.Context, msg sharedMail.Message) error {
	if _, err := Render(msg); err != nil {
		return err
	}
	s.log.Info("noop mail send",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template))
	return nil
}
