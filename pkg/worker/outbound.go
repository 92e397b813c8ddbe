package worker

import (
	"context"
	"time"

	"github.com/medboard/hospital-api/internal/email"
	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/service/notification"
	"github.com/medboard/hospital-api/pkg/logger"
)

type OutboundProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// OutboundProcessor drains the outbound queue and delivers messages.
// Non-email channels are logged and marked sent: sms and voice delivery
// stay simulated.
type OutboundProcessor struct {
	notifier *notification.Service
	sender   email.Sender
	config   OutboundProcessorConfig
	logger   *logger.Logger
}

func NewOutboundProcessor(
	notifier *notification.Service,
	sender email.Sender,
	config OutboundProcessorConfig,
	logger *logger.Logger,
) *OutboundProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 20
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	return &OutboundProcessor{
		notifier: notifier,
		sender:   sender,
		config:   config,
		logger:   logger,
	}
}

func (p *OutboundProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("starting outbound processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down outbound processor")
			return
		case <-ticker.C:
			p.processBatch(ctx)
		}
	}
}

func (p *OutboundProcessor) processBatch(ctx context.Context) {
	for _, msg := range p.notifier.PendingBatch(ctx, p.config.BatchSize) {
		if err := p.deliver(ctx, msg); err != nil {
			p.logger.Error(err, "outbound delivery failed")
			p.notifier.MarkFailed(ctx, msg.ID, err)
			continue
		}
		p.notifier.MarkSent(ctx, msg.ID)
	}
}

func (p *OutboundProcessor) deliver(ctx context.Context, msg *model.OutboundMessage) error {
	switch msg.Channel {
	case model.TemplateChannelEmail:
		return p.sender.Send(ctx, msg.Recipient, msg.Subject, msg.Body)
	default:
		p.logger.Info("simulated delivery", "channel", string(msg.Channel), "recipient", msg.Recipient)
		return nil
	}
}
