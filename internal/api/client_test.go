package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"forecourt/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "test-token", 0, zap.NewNop()), server
}

func TestClientSendsBearerTokenAndDecodes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if r.URL.Path != "/stations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"st-1","name":"Highway East","code":"HE-01","active":true}]`))
	})

	stations, err := client.ListStations(context.Background())
	if err != nil {
		t.Fatalf("list stations: %v", err)
	}
	if len(stations) != 1 || stations[0].Name != "Highway East" {
		t.Fatalf("unexpected stations %+v", stations)
	}
}

func TestClientErrorEnvelopePrecedence(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"payment must match sale value","details":"off by 0.02"}`))
	})

	_, err := client.ListStations(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "payment must match sale value") ||
		!strings.Contains(apiErr.Message, "off by 0.02") {
		t.Fatalf("envelope error and details should both surface, got %q", apiErr.Message)
	}
}

func TestClientFallsBackToStatusText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.ListStations(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "Bad Gateway" {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestLatestReadingsBatchQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "nz-1,nz-2" {
			t.Errorf("unexpected ids query %q", got)
		}
		_, _ = w.Write([]byte(`{"nz-1":{"nozzleId":"nz-1","reading":1040}}`))
	})

	readings, err := client.LatestReadings(context.Background(), []string{"nz-1", "nz-2"})
	if err != nil {
		t.Fatalf("latest readings: %v", err)
	}
	if readings["nz-1"].Reading != 1040 {
		t.Fatalf("unexpected readings %+v", readings)
	}
	if _, ok := readings["nz-2"]; ok {
		t.Fatalf("nozzle without history should be absent")
	}
}

func TestLatestReadingsSkipsEmptyBatch(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	readings, err := client.LatestReadings(context.Background(), nil)
	if err != nil || len(readings) != 0 {
		t.Fatalf("expected empty map, got %v err=%v", readings, err)
	}
	if called {
		t.Fatalf("empty batch must not hit the network")
	}
}

func TestSubmitQuickEntryPostsPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transactions/quick-entry" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"transactionId":"tx-9","readingCount":2}`))
	})

	resp, err := client.SubmitQuickEntry(context.Background(), models.QuickEntryRequest{StationID: "st-1"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.TransactionID != "tx-9" || resp.ReadingCount != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}
