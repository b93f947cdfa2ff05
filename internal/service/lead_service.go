package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/northridge/backend/internal/metrics"
	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/repository"
	"github.com/northridge/backend/pkg/leadhook"
)

// MaxLeadMessageLength is the longest message accepted, in characters.
const MaxLeadMessageLength = 5000

// LeadEventType is the webhook event type for a new lead.
const LeadEventType = "lead.created"

// LeadService accepts contact requests from the results page and forwards
// them to the configured lead sink.
type LeadService interface {
	// Submit validates lead, attaches the saved estimate when EstimateID is
	// set, and forwards it. lead.ID and lead.CreatedAt are populated.
	Submit(ctx context.Context, lead *model.Lead) error
}

type leadServiceImpl struct {
	sink      leadhook.Sink
	estimates EstimateService
	observer  metrics.Observer
	now       func() time.Time
}

// NewLeadService creates a LeadService. estimates may be nil when saved
// estimates are unavailable; observer may be nil.
func NewLeadService(sink leadhook.Sink, estimates EstimateService, observer metrics.Observer) LeadService {
	if observer == nil {
		observer = metrics.Nop{}
	}
	return &leadServiceImpl{sink: sink, estimates: estimates, observer: observer, now: time.Now}
}

func (s *leadServiceImpl) Submit(ctx context.Context, lead *model.Lead) error {
	if err := s.prepare(ctx, lead); err != nil {
		s.observer.RecordLead(metrics.LeadRejected)
		return err
	}

	ev := leadhook.Event{Type: LeadEventType, ID: lead.ID, CreatedAt: lead.CreatedAt, Data: lead}
	if err := s.sink.Send(ctx, ev); err != nil {
		s.observer.RecordLead(metrics.LeadFailed)
		slog.Error("lead forward failed", "error", err, "lead_id", lead.ID)
		return fmt.Errorf("forward lead: %w", err)
	}
	s.observer.RecordLead(metrics.LeadForwarded)
	slog.Info("lead forwarded", "lead_id", lead.ID, "estimate_id", lead.EstimateID)
	return nil
}

func (s *leadServiceImpl) prepare(ctx context.Context, lead *model.Lead) error {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.EstimateID = strings.TrimSpace(lead.EstimateID)

	if lead.Name == "" {
		return &LeadError{Code: "name_required"}
	}
	if lead.Email == "" {
		return &LeadError{Code: "email_required"}
	}
	if _, err := mail.ParseAddress(lead.Email); err != nil {
		return &LeadError{Code: "email_invalid"}
	}
	if len([]rune(lead.Message)) > MaxLeadMessageLength {
		return &LeadError{Code: "message_too_long"}
	}

	if lead.EstimateID != "" && s.estimates != nil {
		saved, err := s.estimates.Get(ctx, lead.EstimateID)
		if errors.Is(err, repository.ErrNotFound) {
			return &LeadError{Code: "estimate_not_found"}
		}
		if err != nil {
			return err
		}
		res := saved.Result
		lead.Estimate = &res
	}

	lead.ID = uuid.NewString()
	lead.CreatedAt = s.now().UTC()
	return nil
}

// InvalidLeadCode returns the client code for an ErrInvalidLead error. A bare
// ErrInvalidLead reports "invalid_lead".
func InvalidLeadCode(err error) (string, bool) {
	var le *LeadError
	if errors.As(err, &le) {
		return le.Code, true
	}
	if errors.Is(err, ErrInvalidLead) {
		return "invalid_lead", true
	}
	return "", false
}
