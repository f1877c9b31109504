package notifier

import (
	log "github.com/sirupsen/logrus"
)

// DevMailer logs messages instead of sending them. It is the default when no
// MailerSend API key is configured.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (m *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	log.Infof("dev mailer: to=%s (%s) subject=%q", toEmail, toName, subject)
	log.Debugf("dev mailer body:\n%s", text)
	return "dev", nil
}
