package notifier

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/slotbook/slotbook/internal/event_bus"
	"github.com/slotbook/slotbook/internal/utils"
)

// Notifier emails candidates their booking confirmation. It listens on the
// event bus, so a failed send surfaces as a handler error without ever
// touching the stored booking.
type Notifier struct {
	mailer         Mailer
	loc            *time.Location
	supportAddress string
}

func NewNotifier(mailer Mailer, loc *time.Location, supportAddress string) *Notifier {
	return &Notifier{
		mailer:         mailer,
		loc:            loc,
		supportAddress: supportAddress,
	}
}

// Register subscribes the notifier to booking confirmations and returns the
// unsubscribe function.
func (n *Notifier) Register(bus *event_bus.EventBus) func() {
	return event_bus.SubscribeTyped(bus, event_bus.BookingConfirmedEvent, n.onBookingConfirmed)
}

func (n *Notifier) onBookingConfirmed(e event_bus.EventT[event_bus.BookingConfirmed]) error {
	b := e.Data

	start := b.StartTime.In(n.loc)
	end := b.EndTime.In(n.loc)
	date := start.Format("Monday, January 2")
	startLabel := utils.FormatTime12(start)
	endLabel := utils.FormatTime12(end)

	with := "your interviewer"
	if b.HostName != "" {
		with = b.HostName
		if b.HostCompany != "" {
			with = fmt.Sprintf("%s (%s)", b.HostName, b.HostCompany)
		}
	}
	link := b.MeetingURL
	if link == "" {
		link = "The meeting link will follow in a separate email."
	}

	subject := fmt.Sprintf("Interview confirmed: %s, %s", date, startLabel)
	text := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your interview with %s is confirmed.\n\n"+
			"Date: %s\n"+
			"Time: %s - %s\n"+
			"Meeting link: %s\n\n"+
			"Join a few minutes early and make sure your camera and microphone work.\n"+
			"If you need to cancel or reschedule, contact us at %s.\n",
		b.AttendeeName, with, date, startLabel, endLabel, link, n.supportAddress,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your interview with <b>%s</b> is confirmed.</p>"+
			"<p>Date: <b>%s</b><br>Time: <b>%s - %s</b><br>Meeting link: %s</p>"+
			"<p>Join a few minutes early and make sure your camera and microphone work.<br>"+
			"If you need to cancel or reschedule, contact us at %s.</p>",
		b.AttendeeName, with, date, startLabel, endLabel, link, n.supportAddress,
	)

	messageID, err := n.mailer.Send(b.AttendeeEmail, b.AttendeeName, subject, text, html)
	if err != nil {
		return fmt.Errorf("failed to send confirmation for booking %s: %w", b.BookingID, err)
	}
	log.Infof("confirmation sent for booking %s (message id %s)", b.BookingID, messageID)
	return nil
}
