package providers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/smartcare/socket/src/messaging"
	"github.com/smartcare/socket/src/store"
)

type appointmentResponse struct {
	ID            int64  `json:"id"`
	PatientName   string `json:"patient_name"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	Reason        string `json:"reason,omitempty"`
	StartTime     string `json:"start_time"`
	Canceled      bool   `json:"canceled"`
	CreatedAt     string `json:"created_at"`
	WhatsAppSent  bool   `json:"whatsapp_sent"`
	FormattedTime string `json:"formatted_time,omitempty"`
}

type cancelRequest struct {
	PatientName string `json:"patient_name"`
	Date        string `json:"date"`
	PhoneNumber string `json:"phone_number"`
}

type cancelResponse struct {
	CanceledCount int  `json:"canceled_count"`
	WhatsAppSent  bool `json:"whatsapp_sent"`
}

// handleScheduleAppointment persists a booking, broadcasts it to the
// dashboards, and queues the WhatsApp confirmation. Field names are
// matched leniently because voice-agent integrations send several shapes.
func (p *Provider) handleScheduleAppointment(c fiber.Ctx) error {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid JSON body"})
	}

	patientName := firstString(body, "patient_name", "patientName", "name")
	phoneNumber := firstString(body, "phone_number", "phoneNumber", "phone")
	reason := firstString(body, "reason", "visitReason")
	if reason == "" {
		reason = "General Consultation"
	}
	startTimeStr := firstString(body, "start_time", "startTime", "dateTime", "appointment_time")

	if patientName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "patient_name is required"})
	}
	if startTimeStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "start_time is required"})
	}

	startTime, err := parseAppointmentTime(startTimeStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid datetime format, expected ISO format like 2026-03-20T14:30:00",
		})
	}

	if phoneNumber != "" {
		phoneNumber = messaging.CleanPhoneNumber(phoneNumber)
	}

	appt, err := p.store.Create(c.Context(), store.Appointment{
		PatientName: patientName,
		PhoneNumber: phoneNumber,
		Reason:      reason,
		StartTime:   startTime,
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("create appointment failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "could not save appointment"})
	}

	formattedTime := appt.StartTime.Format(displayTimeLayout)

	// Dashboards first; the persistence step has already committed, so
	// notification failures must not affect the response.
	p.notifier.NotifyNewBooking(appt.PatientName, formattedTime, appt.Reason, appt.ID, appt.PhoneNumber)

	whatsappQueued := false
	if appt.PhoneNumber != "" {
		whatsappQueued = true
		go func() {
			if err := p.sender.SendConfirmation(appt.PatientName, appt.PhoneNumber, formattedTime, appt.Reason, appt.ID); err != nil {
				p.logger.Warn().Err(err).Int64("appointment_id", appt.ID).Msg("whatsapp confirmation failed")
			}
		}()
	}

	return c.JSON(appointmentResponse{
		ID:            appt.ID,
		PatientName:   appt.PatientName,
		PhoneNumber:   appt.PhoneNumber,
		Reason:        appt.Reason,
		StartTime:     appt.StartTime.Format(time.RFC3339),
		Canceled:      appt.Canceled,
		CreatedAt:     appt.CreatedAt.Format(time.RFC3339),
		WhatsAppSent:  whatsappQueued,
		FormattedTime: formattedTime,
	})
}

// handleCancelAppointment cancels all of a patient's bookings on a date,
// broadcasting one cancellation event per affected appointment.
func (p *Provider) handleCancelAppointment(c fiber.Ctx) error {
	var req cancelRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid JSON body"})
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "patient_name is required"})
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid date format, expected YYYY-MM-DD"})
	}

	canceled, err := p.store.CancelByPatientDate(c.Context(), strings.TrimSpace(req.PatientName), day)
	if err != nil {
		p.logger.Error().Err(err).Msg("cancel appointments failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "could not cancel appointments"})
	}
	if len(canceled) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "No appointment found"})
	}

	whatsappQueued := false
	for _, appt := range canceled {
		formattedTime := appt.StartTime.Format(displayTimeLayout)
		p.notifier.NotifyCancellation(appt.PatientName, formattedTime, appt.ID, len(canceled))

		if req.PhoneNumber != "" && !whatsappQueued {
			whatsappQueued = true
			phone := messaging.CleanPhoneNumber(req.PhoneNumber)
			patient, id := appt.PatientName, appt.ID
			go func() {
				if err := p.sender.SendCancellation(patient, phone, formattedTime, id); err != nil {
					p.logger.Warn().Err(err).Int64("appointment_id", id).Msg("whatsapp cancellation failed")
				}
			}()
		}
	}

	return c.JSON(cancelResponse{
		CanceledCount: len(canceled),
		WhatsAppSent:  whatsappQueued,
	})
}

// handleListAppointments returns non-canceled appointments for a date.
func (p *Provider) handleListAppointments(c fiber.Ctx) error {
	day, err := parseDay(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid date format"})
	}

	appointments, err := p.store.ListByDate(c.Context(), day)
	if err != nil {
		p.logger.Error().Err(err).Msg("list appointments failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "could not list appointments"})
	}

	out := make([]appointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		out = append(out, appointmentResponse{
			ID:          appt.ID,
			PatientName: appt.PatientName,
			PhoneNumber: appt.PhoneNumber,
			Reason:      appt.Reason,
			StartTime:   appt.StartTime.Format(time.RFC3339),
			Canceled:    appt.Canceled,
			CreatedAt:   appt.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}
