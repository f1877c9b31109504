package app

import (
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/slotbook/slotbook/internal/config"
	"github.com/slotbook/slotbook/internal/event_bus"
	"github.com/slotbook/slotbook/internal/utils"
	"github.com/slotbook/slotbook/pkg/booking"
	"github.com/slotbook/slotbook/pkg/host"
	"github.com/slotbook/slotbook/pkg/notifier"
	"github.com/slotbook/slotbook/pkg/schedule"
	"github.com/slotbook/slotbook/pkg/slot"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus      *event_bus.EventBus
	Clock    utils.Clock
	Location *time.Location

	HostRepo    host.Repository
	HostService *host.Service
	HostHandler *host.Handler

	SlotRepo slot.Repository

	BookingRepo    booking.Repository
	BookingService *booking.Service
	BookingHandler *booking.Handler

	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	Mailer   notifier.Mailer
	Notifier *notifier.Notifier
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", cfg.Schedule.Timezone, err)
	}
	deps.Location = loc
	deps.Clock = &utils.SystemClock{}
	deps.Bus = event_bus.NewEventBus()

	deps.HostRepo = host.NewRepository(db)
	deps.HostService = host.NewService(deps.HostRepo)
	deps.HostHandler = host.NewHandler(deps.HostService)

	deps.SlotRepo = slot.NewRepository(db)

	deps.BookingRepo = booking.NewRepository(db)
	deps.BookingService = booking.NewService(deps.BookingRepo, deps.SlotRepo, deps.HostRepo, deps.Bus)
	deps.BookingHandler = booking.NewHandler(deps.BookingService, loc)

	deps.ScheduleService = schedule.NewService(deps.BookingService, loc, deps.Clock)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	if cfg.Email.APIKey != "" {
		deps.Mailer = notifier.NewMailerSendMailer(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	} else {
		log.Info("no mailer API key configured, confirmation emails will be logged only")
		deps.Mailer = notifier.NewDevMailer()
	}
	deps.Notifier = notifier.NewNotifier(deps.Mailer, loc, cfg.Email.SupportAddress)
	deps.Notifier.Register(deps.Bus)

	return deps, nil
}
