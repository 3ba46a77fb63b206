package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/lookup"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store/memstore"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagger"
)

func newTestHandler(t *testing.T, hist store.Store) http.Handler {
	t.Helper()
	srv := thesaurus(t)
	opts := wordreplacer.Options{
		Tagger:         tagger.NewRules(nil),
		Lookup:         &lookup.Client{URLTemplate: srv.URL + "/api"},
		MaxInputLength: 40,
	}
	if hist != nil {
		opts.Recorder = hist
	}
	return newHandler(wordreplacer.New(opts), hist, []string{"*"}, zap.NewNop())
}

func post(t *testing.T, h http.Handler, contentType, body string) (*httptest.ResponseRecorder, rewriteResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/rewrite", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp rewriteResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestHandleRewrite(t *testing.T) {
	h := newTestHandler(t, nil)

	cases := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
		wantStatus  string
		wantOutput  string
	}{
		{"json", "application/json", `{"text":"The dog barked."}`, http.StatusOK, "ok", "The canis familiaris bark."},
		{"plain", "text/plain; charset=utf-8", "the dog", http.StatusOK, "ok", "the canis familiaris"},
		{"html", "text/html", "<p>the <b>dog</b></p>", http.StatusOK, "ok", "the canis familiaris"},
		{"too long", "application/json", `{"text":"` + strings.Repeat("word ", 20) + `"}`, http.StatusRequestEntityTooLarge, "too_long", wordreplacer.MsgTooLong},
		{"rate limited", "application/json", `{"text":"the dog limit"}`, http.StatusTooManyRequests, "rate_limited", wordreplacer.MsgRateLimited},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := post(t, h, tc.contentType, tc.body)
			if rec.Code != tc.wantCode {
				t.Fatalf("status %d, want %d (%s)", rec.Code, tc.wantCode, rec.Body.String())
			}
			if resp.Status != tc.wantStatus || resp.Output != tc.wantOutput {
				t.Errorf("got %+v", resp)
			}
			if resp.ID == "" {
				t.Error("expected run id")
			}
		})
	}
}

func TestHandleRewriteBadJSON(t *testing.T) {
	rec, _ := post(t, newTestHandler(t, nil), "application/json", `{"text":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestHandleRewriteMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rewrite", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", rec.Code)
	}
}

func TestHandleHistory(t *testing.T) {
	hist := memstore.New()
	h := newTestHandler(t, hist)

	_, first := post(t, h, "application/json", `{"text":"the dog"}`)
	post(t, h, "application/json", `{"text":"the dog barked"}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var runs []store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Output != "the canis familiaris bark" {
		t.Errorf("unexpected runs: %+v", runs)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/"+first.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var run store.Run
	json.Unmarshal(rec.Body.Bytes(), &run)
	if run.ID != first.ID || len(run.Decisions) != 2 {
		t.Errorf("unexpected run: %+v", run)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown run: status %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status %d, want 400", rec.Code)
	}
}

func TestHandleHistoryDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	h := newTestHandler(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/rewrite", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(context.Background()))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestServeFallsBackToMemoryHistory(t *testing.T) {
	a := &app{configPath: writeConfig(t, thesaurus(t), "")}

	rep, hist, cleanup, err := a.buildReplacer(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if _, ok := hist.(*memstore.Store); !ok {
		t.Fatalf("expected in-memory history, got %T", hist)
	}

	h := newHandler(rep, hist, []string{"*"}, zap.NewNop())
	if rec, _ := post(t, h, "application/json", `{"text":"the dog"}`); rec.Code != http.StatusOK {
		t.Fatalf("rewrite status %d", rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	var runs []store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if rec.Code != http.StatusOK || len(runs) != 1 || runs[0].Output != "the canis familiaris" {
		t.Errorf("history: status %d, runs %+v", rec.Code, runs)
	}

	_, hist, cleanup2, err := a.buildReplacer(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup2()
	if hist != nil {
		t.Errorf("rewrite and batch should not keep history without a path, got %T", hist)
	}
}
