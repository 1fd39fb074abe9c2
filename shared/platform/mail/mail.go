package mail

import "context"

// Nombres de plantilla conocidos por los adaptadores de correo.
const (
	TemplateOTP            = "otp"
	TemplateWelcome        = "welcome"
	TemplateCourseApproved = "course-approved"
)

// Message es un correo a renderizar con una plantilla.
type Message struct {
	To       string
	Subject  string
	Template string
	Data     map[string]string
}

// Sender envía correos. Los adaptadores devuelven errores de la taxonomía
// (UpstreamError) cuando el proveedor falla.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
