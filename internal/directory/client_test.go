package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/five82/rollcall/internal/fixture"
)

func TestParseUsersURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseUsersURL("")
	if err != nil {
		t.Fatalf("parseUsersURL returned error: %v", err)
	}
	if u.String() != DefaultUsersURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultUsersURL)
	}

	u, err = parseUsersURL("  127.0.0.1:8089/users#frag ")
	if err != nil {
		t.Fatalf("parseUsersURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8089" || u.Path != "/users" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseUsersURL("http://"); err == nil {
		t.Fatal("parseUsersURL(http://) returned nil error, want missing host")
	}
}

func TestClient_FetchUsersFromFixture(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(fixture.Handler())
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + fixture.UsersPath)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	users, err := c.FetchUsers(ctx)
	if err != nil {
		t.Fatalf("FetchUsers returned error: %v", err)
	}
	if len(users) != 12 {
		t.Fatalf("FetchUsers len = %d, want 12", len(users))
	}
	if got := users[0].String("address.city"); got != "Gwenborough" {
		t.Fatalf("first user city = %q, want Gwenborough", got)
	}
}

func TestClient_SendsHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotAccept, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	users, err := c.FetchUsers(context.Background())
	if err != nil {
		t.Fatalf("FetchUsers returned error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("FetchUsers = %#v, want empty non-nil slice", users)
	}
	if !strings.HasPrefix(gotUA, "rollcall/") {
		t.Fatalf("User-Agent = %q, want rollcall/*", gotUA)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if _, err := uuid.Parse(gotRequestID); err != nil {
		t.Fatalf("X-Request-ID = %q, want a uuid: %v", gotRequestID, err)
	}

	c.SetUserAgent("rollcall/test")
	if _, err := c.FetchUsers(context.Background()); err != nil {
		t.Fatalf("FetchUsers returned error: %v", err)
	}
	if gotUA != "rollcall/test" {
		t.Fatalf("User-Agent = %q, want rollcall/test", gotUA)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/object":
			_, _ = w.Write([]byte(`{"id": 1}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	tests := []struct {
		path       string
		wantStatus int
		wantText   string
	}{
		{"/broken", 0, "decode response"},
		{"/object", 0, "decode response"},
		{"/users", 500, "returned status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, err := NewClient(server.URL + tt.path)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchUsers(context.Background())
			var ferr *FetchError
			if !errors.As(err, &ferr) {
				t.Fatalf("FetchUsers error = %v, want *FetchError", err)
			}
			if ferr.StatusCode != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d", ferr.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Fatalf("error = %q, want it to mention %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	c, err := NewClient("127.0.0.1:1/users")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchUsers(context.Background())
	var ferr *FetchError
	if !errors.As(err, &ferr) || ferr.StatusCode != 0 || ferr.Err == nil {
		t.Fatalf("FetchUsers error = %#v, want transport FetchError", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	server := httptest.NewServer(fixture.Handler())
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + fixture.UsersPath)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.FetchUsers(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchUsers error = %v, want context.Canceled", err)
	}
}
