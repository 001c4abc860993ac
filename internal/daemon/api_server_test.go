package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"creditscores/internal/api"
	"creditscores/internal/config"
	"creditscores/internal/scores"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type scoreStoreStub struct {
	records []*scores.Record
	err     error
	changes int64
}

func (s *scoreStoreStub) List(context.Context) ([]*scores.Record, error) {
	return s.records, s.err
}

func (s *scoreStoreStub) Get(_ context.Context, id int64) (*scores.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *scoreStoreStub) Create(_ context.Context, score, userID int64) (*scores.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec := &scores.Record{ID: int64(len(s.records) + 1), Score: score, UserID: userID, CreatedAt: time.Now()}
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *scoreStoreStub) UpdateScore(context.Context, int64, int64) (int64, error) {
	return s.changes, s.err
}

func (s *scoreStoreStub) Delete(context.Context, int64) (int64, error) {
	return s.changes, s.err
}

func (s *scoreStoreStub) Count(context.Context) (int64, error) {
	return int64(len(s.records)), s.err
}

func newTestAPIServer(t *testing.T, store api.Store) *apiServer {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Bind = "127.0.0.1:0"
	srv, err := newAPIServer(&cfg, api.NewCreditScoreService(store), nil)
	if err != nil {
		t.Fatalf("newAPIServer: %v", err)
	}
	return srv
}

func serve(srv *apiServer, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	return w
}

func TestAPIServerHandleList(t *testing.T) {
	store := &scoreStoreStub{records: []*scores.Record{{ID: 1, Score: 700, UserID: 2}}}
	srv := newTestAPIServer(t, store)

	w := serve(srv, http.MethodGet, "/creditscores", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp api.CreditScoreListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.CreditScores) != 1 || resp.CreditScores[0].Score != 700 {
		t.Fatalf("unexpected records: %#v", resp.CreditScores)
	}
}

func TestAPIServerListStoreErrorIs500(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{err: errors.New("database is locked")})

	w := serve(srv, http.MethodGet, "/creditscores", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "database is locked" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestAPIServerGetMissingIs404(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{})

	w := serve(srv, http.MethodGet, "/creditscores/42", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp api.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != api.MessageNotFound {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAPIServerRejectsBadIDs(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{})
	for _, tc := range []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"score":600}`},
		{http.MethodDelete, ""},
	} {
		w := serve(srv, tc.method, "/creditscores/abc", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.method, w.Code)
		}
	}
}

func TestAPIServerCreate(t *testing.T) {
	store := &scoreStoreStub{}
	srv := newTestAPIServer(t, store)

	w := serve(srv, http.MethodPost, "/creditscores", `{"score":"720","user_id":5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.CreateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != api.MessageCreated || resp.ID != 1 {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if resp.CreditScore.Score != 720 || resp.CreditScore.UserID != 5 {
		t.Fatalf("unexpected record: %#v", resp.CreditScore)
	}
}

func TestAPIServerCreateRejectsBadBodies(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{})
	for _, body := range []string{
		`{"score":720}`,
		`{"user_id":5}`,
		`{"score":"high","user_id":5}`,
		`not json`,
	} {
		w := serve(srv, http.MethodPost, "/creditscores", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestAPIServerUpdateMissingReportsZeroChanges(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{changes: 0})

	w := serve(srv, http.MethodPut, "/creditscores/99", `{"score":650}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp api.ChangeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Changes != 0 || resp.Message != api.MessageUpdated {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestAPIServerHealth(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{records: []*scores.Record{{ID: 1}}})
	w := serve(srv, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	failing := newTestAPIServer(t, &scoreStoreStub{err: errors.New("closed")})
	w = serve(failing, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestAPIServerEchoesRequestID(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{})

	req := httptest.NewRequest(http.MethodGet, "/creditscores", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	w = serve(srv, http.MethodGet, "/creditscores", "")
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestAPIServerAllowsConfiguredOrigin(t *testing.T) {
	srv := newTestAPIServer(t, &scoreStoreStub{})

	req := httptest.NewRequest(http.MethodOptions, "/creditscores", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q (status %d)", got, w.Code)
	}
}
