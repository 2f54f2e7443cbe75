package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"agrorent-backend/internal/domain"
)

type sendGridEmailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *sendGridEmailService) send(_ context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendRentalRequestNotification(ctx context.Context, ownerEmail, ownerName, renterName, equipmentName string) error {
	subject := fmt.Sprintf("New rental request: %s", equipmentName)
	plainText := fmt.Sprintf("%s has requested to rent your %s. Review the request in your dashboard.", renterName, equipmentName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>New Rental Request</h2>
				<p><strong>%s</strong> has requested to rent your <strong>%s</strong>.</p>
				<p>Review the request in your dashboard to approve or reject it.</p>
			</body>
		</html>
	`, renterName, equipmentName)
	return s.send(ctx, ownerEmail, ownerName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRentalApprovalNotification(ctx context.Context, renterEmail, renterName, equipmentName, ownerName string) error {
	subject := fmt.Sprintf("Rental approved: %s", equipmentName)
	plainText := fmt.Sprintf("%s approved your rental request for %s.", ownerName, equipmentName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Rental Request Approved</h2>
				<p><strong>%s</strong> approved your rental request for <strong>%s</strong>.</p>
				<p>Contact details are available on your rentals page.</p>
			</body>
		</html>
	`, ownerName, equipmentName)
	return s.send(ctx, renterEmail, renterName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRentalRejectionNotification(ctx context.Context, renterEmail, renterName, equipmentName, ownerName string) error {
	subject := fmt.Sprintf("Rental declined: %s", equipmentName)
	plainText := fmt.Sprintf("%s declined your rental request for %s.", ownerName, equipmentName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Rental Request Declined</h2>
				<p><strong>%s</strong> declined your rental request for <strong>%s</strong>.</p>
				<p>You can browse other listings on the catalog page.</p>
			</body>
		</html>
	`, ownerName, equipmentName)
	return s.send(ctx, renterEmail, renterName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendPendingRequestReminder(ctx context.Context, ownerEmail, ownerName, renterName, equipmentName string, requestedAt time.Time) error {
	subject := fmt.Sprintf("Reminder: pending rental request for %s", equipmentName)
	plainText := fmt.Sprintf("%s requested your %s on %s and is still waiting for a decision.",
		renterName, equipmentName, requestedAt.Format("Jan 2, 2006"))
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Pending Rental Request</h2>
				<p><strong>%s</strong> requested your <strong>%s</strong> on %s and is still waiting for a decision.</p>
			</body>
		</html>
	`, renterName, equipmentName, requestedAt.Format("Jan 2, 2006"))
	return s.send(ctx, ownerEmail, ownerName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendInquiryNotification(ctx context.Context, adminEmail string, inq *domain.Inquiry) error {
	subject := fmt.Sprintf("New contact inquiry from %s %s", inq.FirstName, inq.LastName)
	plainText := fmt.Sprintf("From: %s %s <%s>\n\n%s", inq.FirstName, inq.LastName, inq.Email, inq.Message)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>New Contact Inquiry</h2>
				<p>From: <strong>%s %s</strong> &lt;%s&gt;</p>
				<p>%s</p>
			</body>
		</html>
	`, inq.FirstName, inq.LastName, inq.Email, inq.Message)
	return s.send(ctx, adminEmail, "", subject, plainText, htmlContent)
}

// noopEmailService swallows every send. Used in development when no
// SendGrid key is configured.
type noopEmailService struct{}

func NewNoopEmailService() EmailService { return noopEmailService{} }

func (noopEmailService) SendRentalRequestNotification(context.Context, string, string, string, string) error {
	return nil
}

func (noopEmailService) SendRentalApprovalNotification(context.Context, string, string, string, string) error {
	return nil
}

func (noopEmailService) SendRentalRejectionNotification(context.Context, string, string, string, string) error {
	return nil
}

func (noopEmailService) SendPendingRequestReminder(context.Context, string, string, string, string, time.Time) error {
	return nil
}

func (noopEmailService) SendInquiryNotification(context.Context, string, *domain.Inquiry) error {
	return nil
}
