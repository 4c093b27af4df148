// Package mailer implementa el envío SMTP del reporte del sync.
package mailer

import (
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
)

var _ appsync.ReportMailer = (*GomailSender)(nil)

// GomailSender implementa sync.ReportMailer sobre un servidor SMTP.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el remitente SMTP.
func NewGomailSender(host string, port int, user, password, from string) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send envía el cuerpo HTML al destinatario, con la rendición PDF adjunta si
// attachment no es nil. Abre y cierra la conexión SMTP en cada envío: el
// reporte sale una vez por corrida, no vale la pena mantener sesión.
func (s *GomailSender) Send(to, subject, htmlBody string, attachment []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if attachment != nil {
		m.Attach("warehouse-sync-report.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
