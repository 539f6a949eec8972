package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/courtline/courtline/internal/reservation"
)

type envelopeOut struct {
	Success bool
	Code    int
	Message string
	Data    any
}

func writeEnvelope(w http.ResponseWriter, status int, env envelopeOut) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func testDraft() reservation.Draft {
	return reservation.Draft{
		Date:        "2025-06-11",
		Site:        82,
		Priority:    3,
		Preferences: []reservation.Preference{reservation.DefaultPreference()},
	}
}

func TestSubmit(t *testing.T) {
	var got struct {
		Reservation reservation.Draft
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeEnvelope(w, http.StatusOK, envelopeOut{Success: true, Data: 42})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	uid, err := c.Submit(context.Background(), testDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if uid != 42 {
		t.Errorf("uid = %d, want 42", uid)
	}
	if got.Reservation.Date != "2025-06-11" || got.Reservation.Site != 82 {
		t.Errorf("sent draft mismatch: %+v", got.Reservation)
	}
}

func TestSubmitDomainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, envelopeOut{Success: false, Code: 2, Message: "Malformed Data: invalid date"})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	_, err := c.Submit(context.Background(), testDraft())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.Code != 2 || apiErr.Message != "Malformed Data: invalid date" {
		t.Errorf("unexpected error payload: %+v", apiErr)
	}
}

func TestSubmitTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := New(server.URL, time.Second)
	_, err := c.Submit(context.Background(), testDraft())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure must not be a domain error: %v", err)
	}
}

func TestSubmitInFlightGuard(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeEnvelope(w, http.StatusOK, envelopeOut{Success: true, Data: 1})
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	var wg sync.WaitGroup
	wg.Add(1)
	firstErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := c.Submit(context.Background(), testDraft())
		firstErr <- err
	}()

	// Wait for the first submission to hold the guard.
	deadline := time.After(2 * time.Second)
	for !c.submitting.Load() {
		select {
		case <-deadline:
			t.Fatal("first submission never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := c.Submit(context.Background(), testDraft()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("second submit = %v, want ErrSubmitInFlight", err)
	}

	close(release)
	wg.Wait()
	if err := <-firstErr; err != nil {
		t.Errorf("first submit failed: %v", err)
	}

	// Guard is released after completion.
	if _, err := c.Submit(context.Background(), testDraft()); err != nil {
		t.Errorf("submit after completion: %v", err)
	}
}

func TestCancel(t *testing.T) {
	var gotUID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		gotUID = r.URL.Query().Get("Uid")
		writeEnvelope(w, http.StatusOK, envelopeOut{Success: true})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	if err := c.Cancel(context.Background(), 42); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if gotUID != "42" {
		t.Errorf("Uid query = %q, want \"42\"", gotUID)
	}
}

func TestFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("Page") != "1" || q.Get("Limit") != "5" {
			t.Errorf("query = %v", q)
		}
		writeEnvelope(w, http.StatusOK, envelopeOut{Success: true, Data: Page{
			Count: 23,
			Result: []reservation.Record{
				{Uid: 6, Reservation: testDraft()},
			},
		}})
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	page, err := c.FetchPage(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if page.Count != 23 || len(page.Result) != 1 || page.Result[0].Uid != 6 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := New(server.URL, time.Second)
	if _, err := c.FetchPage(context.Background(), 0, 10); err == nil {
		t.Fatal("expected error for non-envelope body")
	}
}
