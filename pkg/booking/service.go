package booking

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/slotbook/slotbook/internal/event_bus"
	"github.com/slotbook/slotbook/pkg/host"
	"github.com/slotbook/slotbook/pkg/slot"
)

// Confirmation is returned by a successful Admit. It carries the slot timing
// and host details a caller needs to render the confirmation view, and
// whether the confirmation email went out.
type Confirmation struct {
	Booking     Booking
	Slot        slot.Slot
	HostName    string
	HostCompany string
	EmailSent   bool
}

type Service struct {
	repo     Repository
	slotRepo slot.Repository
	hostRepo host.Repository
	bus      *event_bus.EventBus
}

func NewService(repo Repository, slotRepo slot.Repository, hostRepo host.Repository, bus *event_bus.EventBus) *Service {
	return &Service{
		repo:     repo,
		slotRepo: slotRepo,
		hostRepo: hostRepo,
		bus:      bus,
	}
}

// GetAvailability returns the display-ready state of every slot, ascending by
// start time. The snapshot is re-fetched on every call and never cached.
func (s *Service) GetAvailability(ctx context.Context) ([]SlotAvailability, error) {
	slots, err := s.slotRepo.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	bookings, err := s.repo.ListBookings(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return ComputeAvailability(slots, bookings), nil
}

// GetSlotAvailability returns the state of a single slot.
func (s *Service) GetSlotAvailability(ctx context.Context, slotID string) (*SlotAvailability, error) {
	sl, err := s.slotRepo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookings(ctx, Filter{SlotID: slotID})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	views := ComputeAvailability([]slot.Slot{*sl}, bookings)
	return &views[0], nil
}

func (s *Service) ListBookings(ctx context.Context, filter Filter) ([]Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

// Admit validates the booking attempt against a fresh snapshot of the store
// and persists it. Checks run in order: duplicate email, slot existence, slot
// capacity. The pre-insert duplicate check and the insert are two round
// trips, so two concurrent submissions can both pass the check; the unique
// index on email settles that race and surfaces here as ErrDuplicateEmail.
// The capacity re-count and the insert share a transaction.
//
// A failed confirmation email never fails the admission; it is reported via
// Confirmation.EmailSent.
func (s *Service) Admit(ctx context.Context, slotID string, attendee Attendee) (*Confirmation, error) {
	attendee.Email = NormalizeEmail(attendee.Email)

	bookings, err := s.repo.ListBookings(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if !CanAdmit(attendee.Email, bookings) {
		return nil, ErrDuplicateEmail
	}

	sl, err := s.slotRepo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	booked := 0
	for _, b := range bookings {
		if b.SlotID == slotID {
			booked++
		}
	}
	if booked >= sl.Capacity {
		return nil, ErrSlotFull
	}

	var created *Booking
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		count, err := repo.CountForSlot(ctx, slotID)
		if err != nil {
			return err
		}
		if count >= sl.Capacity {
			return ErrSlotFull
		}
		created, err = repo.InsertBooking(ctx, Booking{
			SlotID: slotID,
			Name:   attendee.Name,
			Email:  attendee.Email,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrSlotFull) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	confirmation := &Confirmation{
		Booking: *created,
		Slot:    *sl,
	}
	if sl.HostID != "" {
		h, err := s.hostRepo.GetHost(ctx, sl.HostID)
		if err != nil {
			log.Warnf("host %s for slot %s not found: %v", sl.HostID, sl.ID, err)
		} else {
			confirmation.HostName = h.Name
			confirmation.HostCompany = h.Company
		}
	}

	publishErr := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BookingConfirmedEvent, event_bus.BookingConfirmed{
		BookingID:     created.ID,
		SlotID:        sl.ID,
		AttendeeName:  created.Name,
		AttendeeEmail: created.Email,
		StartTime:     sl.StartTime,
		EndTime:       sl.EndTime,
		HostName:      confirmation.HostName,
		HostCompany:   confirmation.HostCompany,
		MeetingURL:    sl.MeetingURL,
	}))
	if publishErr != nil {
		// The booking stands; the candidate is told the email did not go out.
		log.Warnf("booking %s confirmed but notification failed: %v", created.ID, publishErr)
	}
	confirmation.EmailSent = publishErr == nil

	return confirmation, nil
}
