package leadhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Send_PostsSignedJSON(t *testing.T) {
	secret := "hook_secret"
	var gotBody []byte
	var gotSig, gotType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotType = r.Header.Get("Content-Type")
		gotSig = r.Header.Get(SignatureHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, secret)
	ev := Event{Type: "lead.created", ID: "lead-1", CreatedAt: time.Unix(1700000000, 0).UTC(), Data: map[string]string{"email": "a@example.com"}}
	if err := c.Send(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotType != "application/json" {
		t.Errorf("expected application/json, got %q", gotType)
	}
	var decoded Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.Type != "lead.created" || decoded.ID != "lead-1" {
		t.Errorf("unexpected event %+v", decoded)
	}
	if err := Verify(secret, gotBody, gotSig, time.Now()); err != nil {
		t.Errorf("expected valid signature, got %v", err)
	}
}

func TestClient_Send_UnsignedWithoutSecret(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(SignatureHeader)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "").Send(context.Background(), Event{Type: "lead.created"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSig != "" {
		t.Errorf("expected no signature header, got %q", gotSig)
	}
}

func TestClient_Send_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").Send(context.Background(), Event{})
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestClient_Send_NotConfigured(t *testing.T) {
	if err := NewClient("", "").Send(context.Background(), Event{}); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNew_ReturnsNopWithoutURL(t *testing.T) {
	sink := New("  ", "secret")
	if _, ok := sink.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", sink)
	}
	if err := sink.Send(context.Background(), Event{}); err != nil {
		t.Errorf("expected nil from NopSink, got %v", err)
	}
	if _, ok := New("https://hooks.example.com", "").(*Client); !ok {
		t.Error("expected *Client when URL is set")
	}
}

func TestVerify(t *testing.T) {
	secret := "hook_secret"
	payload := []byte(`{"type":"lead.created"}`)
	now := time.Now()

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid", Sign(secret, now, payload), false},
		{"wrong secret", Sign("other", now, payload), true},
		{"too old", Sign(secret, now.Add(-10*time.Minute), payload), true},
		{"garbage", "v1=abc", true},
		{"bad timestamp", "t=abc,v1=abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(secret, payload, tt.header, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}

	if err := Verify("", payload, Sign(secret, now, payload), now); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
