package mail

import (
	"context"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
)

// EmailAPI es la parte del cliente de Resend que usamos.
type EmailAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender envía correos a través de la API de Resend.
type ResendSender struct {
	emails EmailAPI
	from   string
	log    *zap.Logger
}

var _ sharedMail.Sender = (*ResendSender)(nil)

func NewResendSender(apiKey, from string, log *zap.Logger) *ResendSender {
	return NewResendSenderWithAPI(resend.NewClient(apiKey).Emails, from, log)
}

func NewResendSenderWithAPI(emails EmailAPI, from string, log *zap.Logger) *ResendSender {
	return &ResendSender{emails: emails, from: from, log: log}
}

func (s *ResendSender) Send(ctx context.Context, msg sharedMail.Message) error {
	html, err := Render(msg)
	if err != nil {
		return err
	}

	sent, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    html,
	})
	if err != nil {
		s.log.Error("resend send failed", zap.String("to", msg.To), zap.String("template", msg.Template), zap.Error(err))
		return &sharedDomain.UpstreamError{Service: "mail", Gateway: true, Err: err}
	}

	s.log.Info("📧 correo enviado", zap.String("message_id", sent.Id), zap.String("template", msg.Template))
	return nil
}
