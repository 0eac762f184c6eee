package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"

	"github.com/jmalles/diffscope/internal/review"
)

type fakeProcessor struct {
	mu      sync.Mutex
	numbers []int
}

func (f *fakeProcessor) ProcessPR(ctx context.Context, number int, force bool) (review.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.numbers = append(f.numbers, number)
	return review.Review{Succeeded: true}, nil
}

func (f *fakeProcessor) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.numbers...)
}

func computeSig(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

const openedPayload = `{"action":"opened","pull_request":{"number":7},"repository":{"full_name":"acme/widgets"}}`

func newTestServer(secret string, svc Processor) *Server {
	return NewServer(Config{
		Addr:       ":0",
		Secret:     secret,
		Repository: "acme/widgets",
		Logger:     logr.Discard(),
	}, svc, nil)
}

func deliver(s *Server, event, signature, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/github", strings.NewReader(payload))
	req.Header.Set("X-GitHub-Event", event)
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}
	w := httptest.NewRecorder()
	s.handleDelivery(w, req)
	return w
}

func TestVerifySignature(t *testing.T) {
	secret := "secret"
	payload := []byte(openedPayload)

	if VerifySignature(secret, payload, "sha256=deadbeef") {
		t.Fatalf("expected bad signature to fail")
	}
	if VerifySignature(secret, payload, strings.TrimPrefix(computeSig(secret, payload), signaturePrefix)) {
		t.Fatalf("expected signature without prefix to fail")
	}
	if VerifySignature("", payload, computeSig(secret, payload)) {
		t.Fatalf("expected empty secret to fail")
	}
	if !VerifySignature(secret, payload, computeSig(secret, payload)) {
		t.Fatalf("expected valid signature to pass")
	}
}

func TestHandleDeliveryAccepts(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("secret", svc)

	w := deliver(s, "pull_request", computeSig("secret", []byte(openedPayload)), openedPayload)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	s.jobs.Wait()
	if calls := svc.calls(); len(calls) != 1 || calls[0] != 7 {
		t.Fatalf("expected review of PR 7, got %v", calls)
	}
}

func TestHandleDeliveryBadSignature(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("secret", svc)

	w := deliver(s, "pull_request", "sha256=deadbeef", openedPayload)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if len(svc.calls()) != 0 {
		t.Fatalf("rejected delivery must not trigger a review")
	}
}

func TestHandleDeliveryNoSecretConfigured(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("", svc)

	w := deliver(s, "pull_request", "", openedPayload)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 without configured secret, got %d", w.Code)
	}
	s.jobs.Wait()
	if len(svc.calls()) != 1 {
		t.Fatalf("expected review to run")
	}
}

func TestHandleDeliveryIgnoredAction(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("", svc)

	payload := `{"action":"closed","pull_request":{"number":7},"repository":{"full_name":"acme/widgets"}}`
	w := deliver(s, "pull_request", "", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for ignored action, got %d", w.Code)
	}
	if len(svc.calls()) != 0 {
		t.Fatalf("ignored action must not trigger a review")
	}
}

func TestHandleDeliveryOtherEvent(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("", svc)

	w := deliver(s, "issues", "", `{"action":"opened"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for other event, got %d", w.Code)
	}
	if len(svc.calls()) != 0 {
		t.Fatalf("non pull_request event must not trigger a review")
	}
}

func TestHandleDeliveryPing(t *testing.T) {
	s := newTestServer("secret", &fakeProcessor{})
	w := deliver(s, "ping", computeSig("secret", []byte(`{"zen":"Keep it logically awesome."}`)), `{"zen":"Keep it logically awesome."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for ping, got %d", w.Code)
	}
}

func TestHandleDeliveryWrongRepository(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("", svc)

	payload := `{"action":"opened","pull_request":{"number":7},"repository":{"full_name":"acme/other"}}`
	w := deliver(s, "pull_request", "", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unconfigured repository, got %d", w.Code)
	}
	if len(svc.calls()) != 0 {
		t.Fatalf("unconfigured repository must not trigger a review")
	}
}

func TestHandleDeliveryMissingNumber(t *testing.T) {
	svc := &fakeProcessor{}
	s := newTestServer("", svc)

	w := deliver(s, "pull_request", "", `{"action":"opened","repository":{"full_name":"acme/widgets"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing number, got %d", w.Code)
	}
}

func TestHealthzWithoutDatabase(t *testing.T) {
	s := newTestServer("", &fakeProcessor{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.handleHealthz(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
