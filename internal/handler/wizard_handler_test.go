package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/service"
	"github.com/northridge/backend/internal/wizard"
)

// ---------------------------------------------------------------------------
// Mock WizardService
// ---------------------------------------------------------------------------

type mockWizardService struct {
	transitionFunc func(ctx context.Context, st model.WizardState, from wizard.Step, ev wizard.Event, zip string) (*service.TransitionResult, error)
}

func (m *mockWizardService) Steps(pt model.ProjectType) []wizard.Step {
	return wizard.Steps(pt)
}

func (m *mockWizardService) Transition(ctx context.Context, st model.WizardState, from wizard.Step, ev wizard.Event, zip string) (*service.TransitionResult, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, st, from, ev, zip)
	}
	return &service.TransitionResult{Step: from, State: st}, nil
}

// ---------------------------------------------------------------------------
// GET /api/wizard/steps
// ---------------------------------------------------------------------------

func TestWizardHandler_Steps(t *testing.T) {
	h := NewWizardHandler(&mockWizardService{})
	req := httptest.NewRequest(http.MethodGet, "/api/wizard/steps?projectType=remote", nil)
	rec := httptest.NewRecorder()
	h.Steps(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp stepsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Steps) != 8 || resp.Steps[1] != wizard.StepRemoteType {
		t.Errorf("unexpected steps %v", resp.Steps)
	}
}

func TestWizardHandler_Steps_NoType(t *testing.T) {
	h := NewWizardHandler(&mockWizardService{})
	req := httptest.NewRequest(http.MethodGet, "/api/wizard/steps", nil)
	rec := httptest.NewRecorder()
	h.Steps(rec, req)

	var resp stepsResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Steps) != 1 || resp.Steps[0] != wizard.StepTypeSelect {
		t.Errorf("expected only type-select, got %v", resp.Steps)
	}
}

func TestWizardHandler_Steps_UnknownType(t *testing.T) {
	h := NewWizardHandler(&mockWizardService{})
	req := httptest.NewRequest(http.MethodGet, "/api/wizard/steps?projectType=treehouse", nil)
	rec := httptest.NewRecorder()
	h.Steps(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/wizard/transition
// ---------------------------------------------------------------------------

func TestWizardHandler_Transition_Success(t *testing.T) {
	var gotFrom wizard.Step
	var gotZip string
	mock := &mockWizardService{
		transitionFunc: func(_ context.Context, st model.WizardState, from wizard.Step, ev wizard.Event, zip string) (*service.TransitionResult, error) {
			gotFrom, gotZip = from, zip
			return &service.TransitionResult{Step: wizard.StepAnalyzing, State: st}, nil
		},
	}
	h := NewWizardHandler(mock)

	body := `{"state":{"projectType":"commercial"},"step":"zip","event":"submit-zip","zip":"83814"}`
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/transition", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Transition(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotFrom != wizard.StepZip || gotZip != "83814" {
		t.Errorf("unexpected arguments from=%s zip=%s", gotFrom, gotZip)
	}
	var resp service.TransitionResult
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Step != wizard.StepAnalyzing || resp.State.ProjectType != model.ProjectCommercial {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestWizardHandler_Transition_DefaultsToTypeSelect(t *testing.T) {
	var gotFrom wizard.Step
	mock := &mockWizardService{
		transitionFunc: func(_ context.Context, st model.WizardState, from wizard.Step, _ wizard.Event, _ string) (*service.TransitionResult, error) {
			gotFrom = from
			return &service.TransitionResult{Step: from, State: st}, nil
		},
	}
	h := NewWizardHandler(mock)
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/transition", strings.NewReader(`{"event":"next"}`))
	rec := httptest.NewRecorder()
	h.Transition(rec, req)
	if gotFrom != wizard.StepTypeSelect {
		t.Errorf("expected type-select, got %s", gotFrom)
	}
}

func TestWizardHandler_Transition_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid zip", fmt.Errorf("%w: 12", wizard.ErrInvalidZip), http.StatusBadRequest, "invalid_zip"},
		{"incomplete", fmt.Errorf("%w: sqft", wizard.ErrStepIncomplete), http.StatusBadRequest, "step_incomplete"},
		{"invalid transition", wizard.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition"},
		{"outside area", service.ErrOutsideServiceArea, http.StatusUnprocessableEntity, "outside_service_area"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "estimate_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockWizardService{
				transitionFunc: func(context.Context, model.WizardState, wizard.Step, wizard.Event, string) (*service.TransitionResult, error) {
					return nil, tt.err
				},
			}
			h := NewWizardHandler(mock)
			req := httptest.NewRequest(http.MethodPost, "/api/wizard/transition", strings.NewReader(`{"step":"zip","event":"next"}`))
			rec := httptest.NewRecorder()
			h.Transition(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
			var resp map[string]string
			_ = json.NewDecoder(rec.Body).Decode(&resp)
			if resp["error"] != tt.code {
				t.Errorf("expected error=%s, got %q", tt.code, resp["error"])
			}
		})
	}
}

func TestWizardHandler_Transition_InvalidJSON(t *testing.T) {
	h := NewWizardHandler(&mockWizardService{})
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/transition", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Transition(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
