package service

import (
	"context"
	"fmt"

	"evrental-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendgridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridEmailService) SendBookingConfirmation(ctx context.Context, toEmail, toName, modelName string, txnID int32) error {
	subject := fmt.Sprintf("Booking #%d confirmed", txnID)
	body := fmt.Sprintf("Hello %s,\n\nYour booking #%d for the %s is confirmed. See you soon!\n\nThe EV Rental Team", toName, txnID, modelName)
	return s.send(toEmail, toName, subject, body)
}

func (s *sendgridEmailService) SendDraftReminder(ctx context.Context, toEmail, toName, modelName string, txnID int32) error {
	subject := fmt.Sprintf("Your draft booking #%d is waiting", txnID)
	body := fmt.Sprintf("Hello %s,\n\nYou have a draft booking #%d for the %s that still needs your confirmation.\n\nThe EV Rental Team", toName, txnID, modelName)
	return s.send(toEmail, toName, subject, body)
}

func (s *sendgridEmailService) send(toEmail, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

// noopEmailService is used when email is disabled in config.
type noopEmailService struct{}

func NewNoopEmailService() EmailService {
	return noopEmailService{}
}

func (noopEmailService) SendBookingConfirmation(ctx context.Context, toEmail, toName, modelName string, txnID int32) error {
	logger.Debug("email disabled, skipping booking confirmation", "to", toEmail, "transaction_id", txnID)
	return nil
}

func (noopEmailService) SendDraftReminder(ctx context.Context, toEmail, toName, modelName string, txnID int32) error {
	logger.Debug("email disabled, skipping draft reminder", "to", toEmail, "transaction_id", txnID)
	return nil
}
