package notifications

import (
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Render возвращает заголовок и текст уведомления для отображения пользователю
func Render(kind domain.NotificationKind, payload map[string]string) (string, string) {
	switch kind {
	case domain.NotificationBookingAssigned:
		return "Partner Assigned to Your Booking",
			fmt.Sprintf("Great news! %s has been assigned to your booking. They will contact you soon.",
				valueOr(payload, "partnerName", "A partner"))
	case domain.NotificationNewBooking:
		return "New Booking Assigned!",
			fmt.Sprintf("You have been assigned a new booking from %s. Check your dashboard for details.",
				valueOr(payload, "customerName", "a customer"))
	case domain.NotificationBookingStatus:
		return "Booking Status Updated", statusText(domain.BookingStatus(payload["status"]))
	case domain.NotificationBookingCreated:
		return "Booking Confirmed!",
			fmt.Sprintf("Hello %s! Your booking has been confirmed. We'll notify you once a partner is assigned.",
				valueOr(payload, "customerName", "there"))
	case domain.NotificationPartnerApproved:
		return "Partner Application Approved!",
			fmt.Sprintf("Congratulations %s! Your partner application has been approved. You can now start accepting jobs.",
				valueOr(payload, "partnerName", "partner"))
	default:
		return "Notification", string(kind)
	}
}

func statusText(status domain.BookingStatus) string {
	switch status {
	case domain.StatusInProgress:
		return "Your booking is now in progress!"
	case domain.StatusCompleted:
		return "Your booking has been completed. Please rate your experience."
	case domain.StatusCancelled:
		return "Your booking has been cancelled."
	default:
		return fmt.Sprintf("Your booking status is now %s.", status)
	}
}

func valueOr(payload map[string]string, key, fallback string) string {
	if v, ok := payload[key]; ok && v != "" {
		return v
	}
	return fallback
}
