package messaging

import "fmt"

const (
	clinicName  = "Smart Care Medical Center"
	clinicPhone = "+91-11-4567-8900"
)

// ConfirmationMessage renders the WhatsApp body for a confirmed booking.
func ConfirmationMessage(patientName, appointmentTime, reason string, appointmentID int64) string {
	return fmt.Sprintf(`🏥 *%s*

Dear *%s*,

Your appointment has been confirmed! ✅

📅 *Date/Time:* %s
🩺 *Reason:* %s
🆔 *Booking ID:* #%d

📍 *Location:* %s
📞 *Contact:* %s

To cancel, reply *CANCEL* or call us.

Thank you for choosing Smart Care! 🙏`,
		clinicName, patientName, appointmentTime, reason, appointmentID, clinicName, clinicPhone)
}

// CancellationMessage renders the WhatsApp body for a canceled booking.
func CancellationMessage(patientName, appointmentTime string, appointmentID int64) string {
	return fmt.Sprintf(`🏥 *%s*

Dear *%s*,

Your appointment has been *CANCELED* ❌

📅 *Canceled:* %s
🆔 *Booking ID:* #%d

To reschedule, please call us at:
📞 %s

Thank you! 🙏`,
		clinicName, patientName, appointmentTime, appointmentID, clinicPhone)
}
