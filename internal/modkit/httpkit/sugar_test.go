package httpkit

import (
	"net/http"
	"testing"

	phttp "keywordscout/internal/platform/net/http"
)

// routeRecorder satisfies the Router surface the sugar helpers touch and
// records each registration for assertions
type routeRecorder struct {
	recs []struct {
		verb string
		path string
		h    phttp.Handler
	}
}

func (f *routeRecorder) record(verb, path string, h phttp.Handler) {
	f.recs = append(f.recs, struct {
		verb string
		path string
		h    phttp.Handler
	}{verb, path, h})
}

func (f *routeRecorder) Route(_ string, fn func(Router)) { fn(f) }
func (f *routeRecorder) Group(fn func(Router)) { fn(f) }
func (f *routeRecorder) Use(_ ...func(http.Handler) http.Handler) {}
func (f *routeRecorder) Mux() http.Handler { return http.NewServeMux() }
func (f *routeRecorder) Handle(path string, h http.Handler) {}
func (f *routeRecorder) Get(path string, h phttp.Handler) { f.record("GET", path, h) }
func (f *routeRecorder) Post(path string, h phttp.Handler) { f.record("POST", path, h) }
func (f *routeRecorder) Put(path string, h phttp.Handler) { f.record("PUT", path, h) }
func (f *routeRecorder) Patch(path string, h phttp.Handler) { f.record("PATCH", path, h) }
func (f *routeRecorder) Delete(path string, h phttp.Handler) { f.record("DELETE", path, h) }
func (f *routeRecorder) Options(path string, h phttp.Handler) { f.record("OPTIONS", path, h) }
func (f *routeRecorder) Head(path string, h phttp.Handler) { f.record("HEAD", path, h) }

func TestPostJSON_MountsDecodedHandler(t *testing.T) {
	r := &routeRecorder{}
	type discoverReq struct {
		Seed string `json:"seed"`
	}
	PostJSON[discoverReq](r, "/run", func(_ *http.Request, in discoverReq) (any, error) {
		return in.Seed, nil
	})

	if len(r.recs) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(r.recs))
	}
	rec := r.recs[0]
	if rec.verb != "POST" || rec.path != "/run" || rec.h == nil {
		t.Fatalf("expected POST /run with handler, got %s %s h=%p", rec.verb, rec.path, rec.h)
	}
}

func TestBodylessSugar_MountsHandlers(t *testing.T) {
	handler := func(_ *http.Request) (any, error) { return "ok", nil }

	tests := []struct {
		verb  string
		path  string
		mount func(Router)
	}{
		{"GET", "/cache/stats", func(r Router) { Get(r, "/cache/stats", handler) }},
		{"POST", "/cache/sweep", func(r Router) { Post(r, "/cache/sweep", handler) }},
		{"DELETE", "/cache", func(r Router) { Delete(r, "/cache", handler) }},
	}
	for _, tc := range tests {
		t.Run(tc.verb, func(t *testing.T) {
			r := &routeRecorder{}
			tc.mount(r)

			if len(r.recs) != 1 {
				t.Fatalf("expected 1 registration, got %d", len(r.recs))
			}
			rec := r.recs[0]
			if rec.verb != tc.verb || rec.path != tc.path {
				t.Fatalf("expected %s %s, got %s %s", tc.verb, tc.path, rec.verb, rec.path)
			}
			if rec.h == nil {
				t.Fatal("expected non-nil handler")
			}
		})
	}
}
