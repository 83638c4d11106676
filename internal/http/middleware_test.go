package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/slotshare/internal/application"
)

// fastHashParams keeps argon2id cheap enough for tests.
var fastHashParams = application.Argon2idParams{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen *slog.Logger
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	RequestLogger(logger)(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil {
		t.Fatal("expected request scoped logger in context")
	}

	output := buf.String()
	if !strings.Contains(output, "request started") || !strings.Contains(output, "request completed") {
		t.Fatalf("expected start and completion log lines, got %q", output)
	}
	if !strings.Contains(output, "request_id") {
		t.Fatalf("expected request_id attribute, got %q", output)
	}
}

func TestBasicAuth(t *testing.T) {
	hash, err := application.CreatePasswordHash("s3cret", fastHashParams)
	if err != nil {
		t.Fatalf("failed to create hash: %v", err)
	}
	guard := BasicAuth("owner", hash, nil)(okHandler())

	t.Run("missing credentials are rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schedules/1", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") == "" {
			t.Fatal("expected WWW-Authenticate challenge")
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedules/1", nil)
		req.SetBasicAuth("owner", "wrong")
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong username is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedules/1", nil)
		req.SetBasicAuth("intruder", "s3cret")
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid credentials pass through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/schedules/1", nil)
		req.SetBasicAuth("owner", "s3cret")
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("health probe bypasses auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestScheduleIDContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schedules/1", nil)

	if _, ok := ScheduleIDFromContext(req.Context()); ok {
		t.Fatal("expected no id on a bare context")
	}

	ctx := ContextWithScheduleID(req.Context(), 42)
	id, ok := ScheduleIDFromContext(ctx)
	if !ok || id != 42 {
		t.Fatalf("expected id 42, got %d (ok=%v)", id, ok)
	}
}
