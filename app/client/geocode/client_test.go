package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"refugebot/app/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Google.APIKey = "test-key"

	return newClient(cfg, server.URL)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "dizengoff 1" {
			t.Errorf("address param = %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key param = %q", got)
		}

		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Dizengoff St 1, Tel Aviv-Yafo, Israel",
				"geometry": {"location": {"lat": 32.0897, "lng": 34.4597}}
			}]
		}`))
	})

	got, err := client.Resolve(context.Background(), "dizengoff 1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got == nil {
		t.Fatal("Resolve() = nil, want result")
	}
	if got.FormattedAddress != "Dizengoff St 1, Tel Aviv-Yafo, Israel" {
		t.Fatalf("formatted address = %q", got.FormattedAddress)
	}
	if got.Latitude != 32.0897 || got.Longitude != 34.4597 {
		t.Fatalf("coordinates = %v/%v", got.Latitude, got.Longitude)
	}
}

func TestResolveNoMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	got, err := client.Resolve(context.Background(), "asdkjasdjk")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Resolve() = %+v, want nil", got)
	}
}

func TestResolveProviderErrorStatus(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	})

	if _, err := client.Resolve(context.Background(), "somewhere"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Resolve() error = %v, want ErrUnavailable", err)
	}
}

func TestResolveTransportError(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.Resolve(context.Background(), "somewhere"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Resolve() error = %v, want ErrUnavailable", err)
	}
}
