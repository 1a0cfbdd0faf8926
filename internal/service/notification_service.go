package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
)

// NotificationService emits email notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     provider.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer provider.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleBookingCreated)
	n.dispatcher.Subscribe(events.EventBookingConfirmed, n.handleBookingConfirmed)
	n.dispatcher.Subscribe(events.EventReportUploaded, n.handleReportUploaded)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserRegistered", zap.String("user_id", event.SubjectID), zap.String("provider", string(payload.Provider)))
	n.sendEmail(ctx, payload.Email, "Welcome to the lab",
		fmt.Sprintf("Hi %s, your account has been created.", payload.Name))
	return nil
}

func (n *NotificationService) handleBookingCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingCreated", zap.String("booking_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleBookingConfirmed(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingConfirmed", zap.String("booking_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleReportUploaded(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportUploaded", zap.String("report_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmail(ctx context.Context, to, subject, body string) {
	if n.mailer == nil || !n.mailer.Enabled() {
		n.logger.Debug("mailer not configured; skipping email", zap.String("subject", subject))
		return
	}
	if err := n.mailer.Send(ctx, to, subject, body); err != nil {
		n.logger.Warn("failed to send email", zap.String("subject", subject), zap.Error(err))
	}
}
