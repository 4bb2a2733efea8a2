package svcclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostJSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	breaker := newBreaker("test")
	err := postJSON(context.Background(), &http.Client{}, breaker, srv.URL, map[string]string{"a": "b"}, &out, nil)
	if err != nil {
		t.Fatalf("postJSON: %v", err)
	}
	if !out.OK {
		t.Error("expected OK true")
	}
}

func TestGetJSONAppliesBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "u" || pass != "p" {
			t.Errorf("basic auth = (%s, %s, %v), want (u, p, true)", user, pass, ok)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	breaker := newBreaker("test-auth")
	err := getJSON(context.Background(), &http.Client{}, breaker, srv.URL, &out, &BasicAuth{User: "u", Password: "p"})
	if err != nil {
		t.Fatalf("getJSON: %v", err)
	}
}

func TestDoJSONErrorsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	breaker := newBreaker("test-err")
	err := getJSON(context.Background(), &http.Client{}, breaker, srv.URL, nil, nil)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

type fakeDoer struct {
	err error
}

func (f fakeDoer) Do(req *http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	breaker := newBreaker("test-trip")
	doer := fakeDoer{err: errors.New("connection refused")}
	var lastErr error
	for i := 0; i < 5; i++ {
		lastErr = getJSON(context.Background(), doer, breaker, "http://unreachable.invalid", nil, nil)
	}
	if lastErr == nil {
		t.Fatal("expected failures to produce an error")
	}
	if breaker.State().String() != "open" {
		t.Errorf("breaker state = %v, want open after 5 consecutive failures", breaker.State())
	}
}
