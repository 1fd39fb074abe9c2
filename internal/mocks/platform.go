package mocks

import (
	"context"
	"io"
	"sync"

	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
	sharedStorage "github.com/davicafu/academylab/shared/platform/storage"
)

// RecordingMailer guarda los mensajes en vez de enviarlos.
type RecordingMailer struct {
	Sent []sharedMail.Message
	Err  error
	mu   sync.Mutex
}

var _ sharedMail.Sender = (*RecordingMailer)(nil)

func (m *RecordingMailer) Send(ctx context.Context, msg sharedMail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *RecordingMailer) Last() (sharedMail.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return sharedMail.Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

// RecordingUploader guarda las keys subidas y devuelve una URL de prueba.
type RecordingUploader struct {
	Keys []string
	Err  error
	mu   sync.Mutex
}

var _ sharedStorage.Uploader = (*RecordingUploader)(nil)

func (u *RecordingUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return "", u.Err
	}
	if body != nil {
		_, _ = io.Copy(io.Discard, body)
	}
	u.Keys = append(u.Keys, key)
	return "https://cdn.test/" + key, nil
}
