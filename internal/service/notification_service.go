package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleEvent("ComplaintCreated"))
	n.dispatcher.Subscribe(events.EventComplaintClaimed, n.handleEvent("ComplaintClaimed"))
	n.dispatcher.Subscribe(events.EventTechnicianAssigned, n.handleEvent("TechnicianAssigned"))
	n.dispatcher.Subscribe(events.EventStatusChanged, n.handleEvent("StatusChanged"))
	n.dispatcher.Subscribe(events.EventPaymentCompleted, n.handleEvent("PaymentCompleted"))
	n.dispatcher.Subscribe(events.EventTechnicianPaid, n.handleEvent("TechnicianPaid"))
	n.dispatcher.Subscribe(events.EventAccountBlockToggled, n.handleEvent("AccountBlockToggled"))
	n.dispatcher.Subscribe(events.EventFeedbackSubmitted, n.handleEvent("FeedbackSubmitted"))
}

func (n *NotificationService) handleEvent(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("complaint_id", event.ComplaintID),
			zap.Any("payload", event.Payload))
		n.sendEmailNotificationStub(ctx, event)
		n.sendWebhookNotificationStub(ctx, event)
		return nil
	}
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("complaint_id", event.ComplaintID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("complaint_id", event.ComplaintID),
		zap.String("event_type", string(event.Type)))
}
