package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/kakeru/folio/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestContributionsLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/kakeru" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("y") != "last" {
			t.Errorf("missing y=last query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"total":{"lastYear":321},"contributions":[{"date":"2025-08-30","count":4,"level":2},{"date":"2025-08-31","count":0,"level":0}]}`)
	}))
	defer srv.Close()

	c := NewContributionsClient(srv.URL, "kakeru", srv.Client(), quietLogger())
	res := c.Fetch(context.Background())

	if res.Source != SourceLive {
		t.Fatalf("source = %q, want live", res.Source)
	}
	if res.Total != 321 {
		t.Errorf("total = %d, want 321", res.Total)
	}
	if len(res.Days) != 2 {
		t.Errorf("days = %d, want 2", len(res.Days))
	}
}

func TestContributionsFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewContributionsClient(srv.URL, "kakeru", srv.Client(), quietLogger())
	res := c.Fetch(context.Background())

	if res.Source != SourceFallback {
		t.Fatalf("source = %q, want fallback", res.Source)
	}
	if len(res.Days) != 365 {
		t.Errorf("synthetic days = %d, want 365", len(res.Days))
	}
	for _, d := range res.Days {
		if d.Level < 0 || d.Level > 4 {
			t.Fatalf("level out of range for %s: %d", d.Date, d.Level)
		}
	}
}

func TestSyntheticCalendarDeterministic(t *testing.T) {
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	a := SyntheticCalendar(end, 30)
	b := SyntheticCalendar(end, 30)
	if len(a) != 30 || len(b) != 30 {
		t.Fatalf("spans = %d/%d, want 30", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("day %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestVisitCounterLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hit/folio/visits" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{"value":1042}`)
	}))
	defer srv.Close()

	kv := testutil.TestKV(t)
	v := NewVisitCounter(srv.URL, "folio", "visits", srv.Client(), kv, quietLogger())

	res, err := v.Hit(context.Background())
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if res.Source != SourceLive {
		t.Fatalf("source = %q, want live", res.Source)
	}
	if res.Count != 1042 {
		t.Errorf("count = %d, want 1042", res.Count)
	}
}

func TestVisitCounterFallbackIncrements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	kv := testutil.TestKV(t)
	v := NewVisitCounter(srv.URL, "folio", "visits", srv.Client(), kv, quietLogger())

	for want := int64(1); want <= 3; want++ {
		res, err := v.Hit(context.Background())
		if err != nil {
			t.Fatalf("hit %d: %v", want, err)
		}
		if res.Source != SourceFallback {
			t.Fatalf("source = %q, want fallback", res.Source)
		}
		if res.Count != want {
			t.Errorf("count = %d, want %d", res.Count, want)
		}
	}

	// The fallback count survives in the store.
	raw, err := kv.Get(VisitCountKey)
	if err != nil {
		t.Fatalf("get %s: %v", VisitCountKey, err)
	}
	if raw != "3" {
		t.Errorf("persisted count = %q, want 3", raw)
	}
}

func TestMailerSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1.0/email/send" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailer(srv.URL, "svc_1", "tpl_1", "pub_1", srv.Client(), quietLogger())
	err := m.Send(context.Background(), ContactMessage{
		Name:    "Tanaka",
		Email:   "tanaka@example.com",
		Subject: "hello",
		Message: "nice site",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if got.ServiceID != "svc_1" || got.TemplateID != "tpl_1" || got.UserID != "pub_1" {
		t.Errorf("credentials not forwarded: %+v", got)
	}
	if got.TemplateParams["from_email"] != "tanaka@example.com" {
		t.Errorf("template params = %+v", got.TemplateParams)
	}
}

func TestMailerSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	m := NewMailer(srv.URL, "svc_1", "tpl_1", "pub_1", srv.Client(), quietLogger())
	err := m.Send(context.Background(), ContactMessage{
		Name:    "Tanaka",
		Email:   "tanaka@example.com",
		Message: "hi",
	})
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("err = %v, want ErrSendFailed", err)
	}
}

func TestMailerValidation(t *testing.T) {
	m := NewMailer("http://unused", "svc", "tpl", "pub", nil, quietLogger())

	cases := []struct {
		name string
		msg  ContactMessage
	}{
		{"missing name", ContactMessage{Email: "a@b.com", Message: "x"}},
		{"missing email", ContactMessage{Name: "A", Message: "x"}},
		{"bad email", ContactMessage{Name: "A", Email: "not-an-email", Message: "x"}},
		{"missing message", ContactMessage{Name: "A", Email: "a@b.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := m.Send(context.Background(), tc.msg); err == nil {
				t.Error("expected validation error")
			} else if errors.Is(err, ErrSendFailed) {
				t.Errorf("validation failure should not reach the wire: %v", err)
			}
		})
	}
}
