package services

import "fmt"

// EmailService dispatches transactional mail. Dispatch is out-of-band: the
// caller only hands the message off, delivery happens elsewhere.
type EmailService interface {
	SendVerificationEmail(to, verificationLink string) error
}

// EmailPublisher is the slice of the message-queue client the email service
// needs. Satisfied by *rabbitmq.Client.
type EmailPublisher interface {
	PublishEmailRequested(emailData map[string]interface{}) error
}

// QueueEmailService publishes email requests to the message queue, where a
// consumer delivers them over SMTP.
type QueueEmailService struct {
	publisher EmailPublisher
}

// NewQueueEmailService creates a new QueueEmailService.
func NewQueueEmailService(publisher EmailPublisher) *QueueEmailService {
	return &QueueEmailService{
		publisher: publisher,
	}
}

// SendVerificationEmail queues the account-verification email.
func (s *QueueEmailService) SendVerificationEmail(to, verificationLink string) error {
	body := fmt.Sprintf(
		`<h2>Verify Account : Smart Contact Manager</h2><p>Click the link below to verify your account:</p><p><a href=%q>%s</a></p>`,
		verificationLink, verificationLink)

	emailData := map[string]interface{}{
		"to":      to,
		"subject": "Verify Account : Smart Contact Manager",
		"body":    body,
	}
	if err := s.publisher.PublishEmailRequested(emailData); err != nil {
		return fmt.Errorf("failed to queue verification email for %s: %w", to, err)
	}
	return nil
}
