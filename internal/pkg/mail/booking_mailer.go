package mail

import (
	"fmt"

	"github.com/VenueBookHQ/VenueBook/app/models"
)

// BookingMailer sends booking lifecycle mails over SMTP. It implements
// booking.Notifier; callers treat every failure as logged-and-ignored.
type BookingMailer struct {
	adminEmail string
}

// NewBookingMailer creates a mailer that copies the operator on new bookings.
func NewBookingMailer(adminEmail string) *BookingMailer {
	return &BookingMailer{adminEmail: adminEmail}
}

// SendBookingConfirmation mails the customer, attaching the invoice when a
// rendered file path is supplied.
func (m *BookingMailer) SendBookingConfirmation(booking *models.Booking, user *models.User, attachmentPath string) error {
	subject := fmt.Sprintf("Booking confirmed: %s", booking.InvoiceNumber)
	body := fmt.Sprintf(`
		<h2>Thank you for your booking, %s!</h2>
		<p>Your booking <strong>%s</strong> for <strong>%s</strong> on %s is registered.</p>
		<table>
			<tr><td>Base price</td><td>%d</td></tr>
			<tr><td>Slot price</td><td>%d</td></tr>
			<tr><td>Addons</td><td>%d</td></tr>
			<tr><td>Tax</td><td>%d</td></tr>
			<tr><td><strong>Total</strong></td><td><strong>%d</strong></td></tr>
		</table>
		<p>Payment status: %s</p>`,
		user.Name,
		booking.InvoiceNumber,
		booking.EventName,
		booking.EventDate.Format("02 Jan 2006"),
		booking.BasePrice,
		booking.SlotPrice,
		booking.AddonsTotal,
		booking.Tax,
		booking.TotalAmount,
		booking.PaymentStatus,
	)

	return SendMailWithAttachment(user.Email, subject, body, attachmentPath)
}

// SendAdminNotification mails the operator about a new or settled booking.
func (m *BookingMailer) SendAdminNotification(booking *models.Booking, user *models.User) error {
	if m.adminEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Booking %s: %s (%s)", booking.InvoiceNumber, booking.EventName, booking.Status)
	body := fmt.Sprintf(`
		<h3>Booking %s</h3>
		<p>Customer: %s &lt;%s&gt; %s</p>
		<p>Event: %s (%s), %s %s-%s, %d guests</p>
		<p>Total: %d, paid: %d, payment status: %s</p>`,
		booking.InvoiceNumber,
		user.Name, user.Email, user.Phone,
		booking.EventName, booking.EventType,
		booking.EventDate.Format("02 Jan 2006"), booking.StartTime, booking.EndTime,
		booking.GuestCount,
		booking.TotalAmount, booking.PaidAmount, booking.PaymentStatus,
	)

	return SendMail(m.adminEmail, subject, body)
}
