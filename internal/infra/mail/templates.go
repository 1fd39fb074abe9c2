package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/yuin/goldmark"

	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
)

// Las plantillas se escriben en markdown y se convierten a HTML con goldmark.
// goldmark no deja pasar HTML crudo, así que los datos del usuario no inyectan marcado.
var templates = map[string]*template.Template{
	sharedMail.TemplateOTP: template.Must(template.New(sharedMail.TemplateOTP).Parse(`# Verify your email

Hi {{.name}},

Your verification code is **{{.otp}}**. It expires in 5 minutes.

If you did not request this code you can ignore this message.
`)),
	sharedMail.TemplateWelcome: template.Must(template.New(sharedMail.TemplateWelcome).Parse(`# Welcome, {{.name}}!

Your account is ready. Verify your email to unlock every course.
`)),
	sharedMail.TemplateCourseApproved: template.Must(template.New(sharedMail.TemplateCourseApproved).Parse(`# Your course is live

Hi {{.name}},

**{{.title}}** has been approved and is now visible to students.
`)),
}

var markdown = goldmark.New()

// Render devuelve el HTML de la plantilla con los datos del mensaje.
func Render(msg sharedMail.Message) (string, error) {
	tpl, ok := templates[msg.Template]
	if !ok {
		return "", fmt.Errorf("unknown mail template %q", msg.Template)
	}

	var md bytes.Buffer
	if err := tpl.Execute(&md, msg.Data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", msg.Template, err)
	}

	var html bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &html); err != nil {
		return "", fmt.Errorf("render markdown %s: %w", msg.Template, err)
	}
	return html.String(), nil
}
