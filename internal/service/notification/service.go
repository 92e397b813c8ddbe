package notification

import (
	"context"
	"time"

	"github.com/medboard/hospital-api/pkg/metrics"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/store"
)

type Service struct {
	store   *store.Store
	metrics *metrics.Metrics
}

func NewService(st *store.Store, m *metrics.Metrics) *Service {
	return &Service{store: st, metrics: m}
}

func (s *Service) List(ctx context.Context, hospitalID int64) ([]*model.Notification, error) {
	return s.store.Notifications.List(func(n *model.Notification) bool {
		return n.HospitalID == hospitalID
	}), nil
}

func (s *Service) Notify(ctx context.Context, hospitalID int64, title, body, category string) *model.Notification {
	n := &model.Notification{
		HospitalID: hospitalID,
		Title:      title,
		Body:       body,
		Category:   category,
		CreatedAt:  time.Now(),
	}
	s.store.Notifications.Create(n, nil)
	return n
}

// OutboundQueue lists queued messages for a hospital, pending first is
// not needed: insertion order matches enqueue order.
func (s *Service) OutboundQueue(ctx context.Context, hospitalID int64) ([]*model.OutboundMessage, error) {
	return s.store.Outbound.List(func(m *model.OutboundMessage) bool {
		return m.HospitalID == hospitalID
	}), nil
}

// Enqueue appends a message to the outbound queue for the worker to
// drain.
func (s *Service) Enqueue(ctx context.Context, msg *model.OutboundMessage) *model.OutboundMessage {
	msg.Status = model.OutboundStatusPending
	msg.EnqueuedAt = time.Now()
	s.store.Outbound.Create(msg, nil)

	if s.metrics != nil {
		s.metrics.OutboundEnqueued.Inc()
		s.metrics.OutboundQueueSize.Inc()
	}
	return msg
}

// PendingBatch returns up to limit pending messages, oldest first.
func (s *Service) PendingBatch(ctx context.Context, limit int) []*model.OutboundMessage {
	pending := s.store.Outbound.List(func(m *model.OutboundMessage) bool {
		return m.Status == model.OutboundStatusPending
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending
}

func (s *Service) MarkSent(ctx context.Context, id int64) {
	now := time.Now()
	s.store.Outbound.Update(id, func(m *model.OutboundMessage) {
		m.Status = model.OutboundStatusSent
		m.SentAt = &now
		m.Attempts++
	})
	if s.metrics != nil {
		s.metrics.OutboundSent.Inc()
		s.metrics.OutboundQueueSize.Dec()
	}
}

func (s *Service) MarkFailed(ctx context.Context, id int64, cause error) {
	s.store.Outbound.Update(id, func(m *model.OutboundMessage) {
		m.Status = model.OutboundStatusFailed
		m.LastError = cause.Error()
		m.Attempts++
	})
	if s.metrics != nil {
		s.metrics.OutboundFailed.Inc()
		s.metrics.OutboundQueueSize.Dec()
	}
}
