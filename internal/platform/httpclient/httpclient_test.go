package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != DefaultUserAgent || r.Header.Get("X-Test") != "1" {
			http.Error(w, "missing headers", http.StatusBadRequest)
			return
		}
		switch r.URL.Path {
		case "/echo":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			_ = json.NewEncoder(w).Encode(map[string]string{"got": in["name"]})
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "nope", http.StatusUnauthorized)
		}
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	h := map[string]string{"X-Test": "1"}
	ctx := context.Background()

	var out map[string]string
	if err := c.DoJSON(ctx, http.MethodPost, "echo", h, map[string]string{"name": "ana"}, &out); err != nil {
		t.Fatalf("echo: %v", err)
	}
	if out["got"] != "ana" {
		t.Fatalf("unexpected echo: %v", out)
	}

	if err := c.DoJSON(ctx, http.MethodDelete, "/empty", h, nil, &out); err != nil {
		t.Fatalf("empty body: %v", err)
	}

	err = c.DoJSON(ctx, http.MethodGet, "/secret", h, nil, nil)
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestNewWithBaseURL_Invalid(t *testing.T) {
	for _, u := range []string{"localhost:8080", "ftp://host", "/relative"} {
		if _, err := NewWithBaseURL(u, 0); err == nil {
			t.Fatalf("expected error for %q", u)
		}
	}
}
