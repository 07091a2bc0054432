package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"roompla/internal/auth"
	"roompla/internal/config"
	"roompla/internal/handler"
	"roompla/internal/model"
	"roompla/internal/router"
	"roompla/internal/service"
	"roompla/internal/testfixtures"
	"roompla/internal/utils"
)

const testSecret = "test-secret"

type app struct {
	e     *echo.Echo
	store *testfixtures.Store
}

// newApp wires the full HTTP surface on top of in-memory fixtures: real
// router, middleware, handlers, service and authenticator; only storage and
// the directory are faked.
func newApp(t *testing.T) *app {
	t.Helper()

	store := testfixtures.NewStore()
	store.AddRoom(model.Room{ID: "A", MaxOccupancy: 1})
	store.AddRoom(model.Room{ID: "B", MaxOccupancy: 2})

	hash := func(pw string) *string {
		h, err := utils.HashPassword(pw, 4)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		return &h
	}
	users := testfixtures.Users{
		"alice": {ID: "alice", DisplayName: "Alice Example", ContactInfo: "alice@example.org", PasswordHash: hash("alice-pw")},
		"bob":   {ID: "bob", DisplayName: "Bob Example", ContactInfo: "bob@example.org", PasswordHash: hash("bob-pw")},
	}

	authenticator := auth.NewAuthenticator(users, nil, testSecret, 0)
	svc := service.NewOccupancyService(store)

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewAuthHandler(authenticator),
		handler.NewOccupancyHandler(svc),
		testSecret, config.RateLimitConfig{}, nil)
	return &app{e: e, store: store}
}

func (a *app) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) login(t *testing.T, user, password string) string {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/login", "", `{"user_id":"`+user+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", user, rec.Code, rec.Body.String())
	}
	return rec.Body.String()
}

func timeRangeBody(start, end string) string {
	return `{"start":"` + start + `","end":"` + end + `"}`
}

func TestLoginEndpoint(t *testing.T) {
	a := newApp(t)

	t.Run("returns a token as plain text", func(t *testing.T) {
		token := a.login(t, "alice", "alice-pw")
		claims, err := auth.VerifyToken(testSecret, token)
		if err != nil {
			t.Fatalf("returned token does not verify: %v", err)
		}
		if claims.Subject != "alice" {
			t.Fatalf("unexpected subject: %q", claims.Subject)
		}
	})

	t.Run("bad credentials and unknown users both yield 401", func(t *testing.T) {
		for _, body := range []string{
			`{"user_id":"alice","password":"wrong"}`,
			`{"user_id":"mallory","password":"alice-pw"}`,
		} {
			rec := a.request(t, http.MethodPost, "/login", "", body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		}
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		rec := a.request(t, http.MethodPost, "/login", "", `{"user_id":"alice"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestOccupancyEndpoints(t *testing.T) {
	a := newApp(t)
	aliceToken := a.login(t, "alice", "alice-pw")
	bobToken := a.login(t, "bob", "bob-pw")

	t.Run("requests without a token are rejected", func(t *testing.T) {
		rec := a.request(t, http.MethodGet, "/rooms", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("lists rooms", func(t *testing.T) {
		rec := a.request(t, http.MethodGet, "/rooms", aliceToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var rooms []model.Room
		if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(rooms) != 2 || rooms[0].ID != "A" || rooms[1].ID != "B" {
			t.Fatalf("unexpected rooms: %+v", rooms)
		}
	})

	var created model.Occupancy

	t.Run("creates an occupancy", func(t *testing.T) {
		rec := a.request(t, http.MethodPut, "/rooms/A/occupancies", aliceToken,
			timeRangeBody("2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if created.ID == 0 || created.UserID != "alice" || created.UserName != "Alice Example" {
			t.Fatalf("unexpected occupancy: %+v", created)
		}
	})

	t.Run("maps a full room to 409", func(t *testing.T) {
		rec := a.request(t, http.MethodPut, "/rooms/A/occupancies", bobToken,
			timeRangeBody("2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("maps an unknown room to 404", func(t *testing.T) {
		rec := a.request(t, http.MethodPut, "/rooms/Z/occupancies", aliceToken,
			timeRangeBody("2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("maps an empty range to 400", func(t *testing.T) {
		rec := a.request(t, http.MethodPut, "/rooms/A/occupancies", aliceToken,
			timeRangeBody("2026-03-02T10:00:00Z", "2026-03-02T10:00:00Z"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("lists with redaction for other users", func(t *testing.T) {
		rec := a.request(t, http.MethodGet, "/rooms/A/occupancies", bobToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var occs []model.Occupancy
		if err := json.Unmarshal(rec.Body.Bytes(), &occs); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(occs) != 1 {
			t.Fatalf("expected 1 occupancy, got %d", len(occs))
		}
		if occs[0].UserID != model.AnonymizedUser || occs[0].UserContact != "" {
			t.Fatalf("entry not anonymized: %+v", occs[0])
		}
		if !occs[0].Start.Equal(created.Start) {
			t.Fatalf("time range must stay visible: %+v", occs[0])
		}
	})

	t.Run("foreign update is a silent no-op", func(t *testing.T) {
		rec := a.request(t, http.MethodPut, "/rooms/A/occupancies/1", bobToken,
			timeRangeBody("2026-03-02T12:00:00Z", "2026-03-02T13:00:00Z"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		row := a.store.Occupancies()[0]
		if row.UserID != "alice" || !row.Start.Equal(created.Start) {
			t.Fatalf("foreign update mutated the row: %+v", row)
		}
	})

	t.Run("owner updates an occupancy", func(t *testing.T) {
		rec := a.request(t, http.MethodPut, "/rooms/A/occupancies/1", aliceToken,
			timeRangeBody("2026-03-02T12:00:00Z", "2026-03-02T13:00:00Z"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			rec := a.request(t, http.MethodDelete, "/rooms/A/occupancies/1", aliceToken, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
		}
		if got := len(a.store.Occupancies()); got != 0 {
			t.Fatalf("expected empty store, got %d rows", got)
		}
	})

	t.Run("rejects a non-numeric occupancy id", func(t *testing.T) {
		rec := a.request(t, http.MethodDelete, "/rooms/A/occupancies/abc", aliceToken, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
