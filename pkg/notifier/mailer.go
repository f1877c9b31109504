package notifier

// Mailer sends one email. Implementations return the provider's message id
// when they have one.
type Mailer interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
}
