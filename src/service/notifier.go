package service

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/smartcare/socket/src/hub"
	"github.com/smartcare/socket/src/types"
)

// Fixed status markers attached to booking events.
const (
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// Notifier translates appointment mutations into dashboard frames.
// Calls never fail from the caller's perspective: per-recipient delivery
// failures are absorbed by the hub, so appointment handlers can treat
// notification as fire-and-forget.
type Notifier struct {
	hub    *hub.Hub
	logger zerolog.Logger
	now    func() time.Time
}

// NewNotifier creates a notifier backed by the given hub.
func NewNotifier(h *hub.Hub, logger zerolog.Logger) *Notifier {
	return &Notifier{
		hub:    h,
		logger: logger.With().Str("component", "notifier").Logger(),
		now:    time.Now,
	}
}

// Hub returns the underlying hub.
func (n *Notifier) Hub() *hub.Hub { return n.hub }

// NotifyNewBooking broadcasts a new_booking event to all dashboards.
// phone may be empty; it is sent as null on the wire.
func (n *Notifier) NotifyNewBooking(patientName, appointmentTime, reason string, appointmentID int64, phoneNumber string) {
	var phone *string
	if phoneNumber != "" {
		phone = &phoneNumber
	}
	frame := types.Frame{
		Event: types.EventNewBooking,
		Data: types.BookingData{
			ID:        appointmentID,
			Patient:   patientName,
			Time:      appointmentTime,
			Reason:    reason,
			Phone:     phone,
			Timestamp: n.now().Format(time.RFC3339),
			Status:    StatusConfirmed,
		},
	}
	n.logger.Debug().Int64("appointment_id", appointmentID).Msg("broadcasting new booking")
	n.hub.Broadcast(frame)
}

// NotifyCancellation broadcasts a booking_canceled event to all dashboards.
func (n *Notifier) NotifyCancellation(patientName, appointmentTime string, appointmentID int64, canceledCount int) {
	frame := types.Frame{
		Event: types.EventBookingCanceled,
		Data: types.CancellationData{
			ID:            appointmentID,
			Patient:       patientName,
			Time:          appointmentTime,
			CanceledCount: canceledCount,
			Timestamp:     n.now().Format(time.RFC3339),
			Status:        StatusCanceled,
		},
	}
	n.logger.Debug().Int64("appointment_id", appointmentID).Msg("broadcasting cancellation")
	n.hub.Broadcast(frame)
}

// NotifySystem broadcasts a system_message event with the given severity.
// Unknown levels fall back to info.
func (n *Notifier) NotifySystem(text, level string) {
	switch level {
	case types.LevelInfo, types.LevelWarning, types.LevelError:
	default:
		level = types.LevelInfo
	}
	frame := types.Frame{
		Event: types.EventSystemMessage,
		Data: types.SystemData{
			Message:   text,
			Level:     level,
			Timestamp: n.now().Format(time.RFC3339),
		},
	}
	n.hub.Broadcast(frame)
}
