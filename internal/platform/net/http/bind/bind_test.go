package bind

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "keywordscout/internal/platform/errors"
)

// discoverIn mirrors the discovery run request wire shape
type discoverIn struct {
	Seed     string `json:"seed" validate:"required,keyword"`
	MinGrade string `json:"min_grade,omitempty" validate:"omitempty,oneof=S A B C D"`
	Refresh  bool   `json:"refresh,omitempty"`
}

func postJSON(body string) *http.Request {
	return httptest.NewRequest("POST", "/run", strings.NewReader(body))
}

func TestParseJSON_Success(t *testing.T) {
	got, err := ParseJSON[discoverIn](postJSON(`{"seed":"camping gear","min_grade":"B","refresh":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Seed != "camping gear" || got.MinGrade != "B" || !got.Refresh {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody_Disallow(t *testing.T) {
	req := httptest.NewRequest("POST", "/run", http.NoBody)
	_, err := ParseJSON[discoverIn](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_EmptyBody_TolerantVerbs(t *testing.T) {
	// safe/idempotent methods bind a zero value instead of failing
	for _, method := range []string{"GET", "DELETE", "HEAD", "OPTIONS"} {
		req := httptest.NewRequest(method, "/cache", http.NoBody)
		got, err := ParseJSON[discoverIn](req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if got != (discoverIn{}) {
			t.Fatalf("%s: expected zero value, got %+v", method, got)
		}
	}
}

// Covers: AllowEmptyBody true + EOF path in Decode
func TestParseJSON_AllowEmptyBody_EOF_OK(t *testing.T) {
	type sweepIn struct {
		DryRun bool `json:"dry_run"`
	}
	req := httptest.NewRequest("POST", "/cache/sweep", http.NoBody)

	got, err := ParseJSON[sweepIn](req, JSONOptions{AllowEmptyBody: true})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != (sweepIn{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

// Covers: AllowEmptyBody true + MaxBytes > 0 branch
func TestParseJSON_AllowEmptyBody_WithMaxBytes(t *testing.T) {
	type sweepIn struct {
		DryRun bool `json:"dry_run"`
	}
	got, err := ParseJSON[sweepIn](postJSON(`{}`), JSONOptions{AllowEmptyBody: true, MaxBytes: 8})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != (sweepIn{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := ParseJSON[discoverIn](postJSON(`{"seed":`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	_, err := ParseJSON[discoverIn](postJSON(`{"seed":"tent","depth":3}`)) // DisallowUnknown default true
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for unknown field, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_DisallowUnknownFalse_OK(t *testing.T) {
	got, err := ParseJSON[discoverIn](postJSON(`{"seed":"tent","depth":3}`), JSONOptions{DisallowUnknown: false})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got.Seed != "tent" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

// Forces trailing-data branch via seam
func TestParseJSON_TrailingData_Seam(t *testing.T) {
	orig := jsonMore
	jsonMore = func(_ *json.Decoder) bool { return true }
	defer func() { jsonMore = orig }()

	_, err := ParseJSON[discoverIn](postJSON(`{"seed":"tent"}`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for trailing data, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing seed", `{"min_grade":"A"}`},
		{"blank seed", `{"seed":"   "}`},
		{"multiline seed", `{"seed":"tent\nreview"}`},
		{"bad grade", `{"seed":"tent","min_grade":"Z"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[discoverIn](postJSON(tc.body))
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("expected validation error code, got %v (%v)", perr.CodeOf(err), err)
			}
		})
	}
}

// Covers: peek+combine path with and without MaxBytes
func TestParseJSON_PeekCombine(t *testing.T) {
	for _, limit := range []int64{0, 64} {
		_, err := ParseJSON[discoverIn](postJSON(`{"seed":"winter boots"}`), JSONOptions{MaxBytes: limit, DisallowUnknown: true})
		if err != nil {
			t.Fatalf("limit %d: unexpected: %v", limit, err)
		}
	}
}

func TestParseJSON_MaxBytes_Fail(t *testing.T) {
	opts := JSONOptions{MaxBytes: 5, DisallowUnknown: true}
	_, err := ParseJSON[discoverIn](postJSON(`{"seed":"winter boots"}`), opts)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error due to size limit, got %v (%v)", perr.CodeOf(err), err)
	}
}

// Triggers InvalidValidationError in validator.Struct
func TestParseJSON_InvalidValidationError_Path(t *testing.T) {
	_, err := ParseJSON[int](postJSON(`5`)) // non-struct validation
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON-coded error, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestBindJSON_Middleware(t *testing.T) {
	mw := JSON[discoverIn]()
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		p := FromContext[discoverIn](r)
		if p == nil {
			t.Fatalf("expected payload in context")
		}
		if p.Seed != "camping gear" || p.MinGrade != "A" {
			t.Fatalf("unexpected payload: %+v", *p)
		}
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, postJSON(`{"seed":"camping gear","min_grade":"A"}`))
	if !nextCalled || rec.Code != http.StatusOK {
		t.Fatalf("called=%v code=%d", nextCalled, rec.Code)
	}
}

func TestBindJSON_MiddlewareError(t *testing.T) {
	mw := JSON[discoverIn]()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next should not be called on bind error")
	})
	req := httptest.NewRequest("POST", "/run", http.NoBody)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) == "" {
		t.Fatalf("expected error body")
	}
}

func TestFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if v := FromContext[discoverIn](req); v != nil {
		t.Fatalf("expected nil when no payload present")
	}
}

// json tag name resolution: json:"foo,omitempty", json:"-", and no json tag
func TestTagNameFunc_JsonTagVariants(t *testing.T) {
	Init()

	type s struct {
		MaxSuggest int `json:"max_suggest,omitempty" validate:"min=1"`
		Internal   int `json:"-" validate:"min=1"`
		Plain      int `validate:"min=1"`
	}

	err := Get().Validator.Struct(s{MaxSuggest: 0, Internal: 1, Plain: 1})
	field, msg := ValidationFieldAndMessage(err)
	if field != "max_suggest" { // trimmed before comma
		t.Fatalf("expected field=max_suggest, got %s", field)
	}
	if msg != "max_suggest must be at least 1" {
		t.Fatalf("unexpected message: %q", msg)
	}

	err = Get().Validator.Struct(s{MaxSuggest: 1, Internal: 0, Plain: 1})
	if field, _ = ValidationFieldAndMessage(err); field != "Internal" { // dash falls back to field name
		t.Fatalf("expected field=Internal, got %s", field)
	}

	err = Get().Validator.Struct(s{MaxSuggest: 1, Internal: 1, Plain: 0})
	if field, _ = ValidationFieldAndMessage(err); field != "Plain" {
		t.Fatalf("expected field=Plain, got %s", field)
	}
}

func TestValidationFieldAndMessage_GenericError(t *testing.T) {
	field, msg := ValidationFieldAndMessage(errors.New("boom"))
	if field != "" || msg != "boom" {
		t.Fatalf("expected generic passthrough, got field=%q msg=%q", field, msg)
	}
}

func TestTranslations_MaxAndKeyword(t *testing.T) {
	Init()

	type s struct {
		Variants int    `json:"variants" validate:"max=8"`
		Seed     string `json:"seed" validate:"keyword"`
	}

	// max message
	err := Get().Validator.Struct(s{Variants: 9, Seed: "tent"})
	_, msg := ValidationFieldAndMessage(err)
	if msg != "variants must be at most 8" {
		t.Fatalf("unexpected max message: %q", msg)
	}

	// keyword message
	err = Get().Validator.Struct(s{Variants: 1, Seed: " \t "})
	_, msg = ValidationFieldAndMessage(err)
	if msg != "seed must be a non-blank single-line keyword" {
		t.Fatalf("unexpected keyword message: %q", msg)
	}
}

func TestKeywordTag_Table(t *testing.T) {
	Init()
	type s struct {
		Seed string `json:"seed" validate:"keyword"`
	}

	tests := []struct {
		seed string
		ok   bool
	}{
		{"winter boots", true},
		{"  padded jacket  ", true}, // trimmed before the blank check
		{"", false},
		{"\t\n", false},
		{"tent\nreview", false},
		{"tent\rreview", false},
	}
	for _, tc := range tests {
		err := Get().Validator.Struct(s{Seed: tc.seed})
		if (err == nil) != tc.ok {
			t.Fatalf("keyword(%q): err=%v, want ok=%v", tc.seed, err, tc.ok)
		}
	}
}

func TestRegisterValidation_DuplicateTag_Overwrites(t *testing.T) {
	Init()

	// register "dupe_tag" that always fails
	if err := RegisterValidation("dupe_tag", func(fl FieldLevel) bool { return false }); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	// overwrite with a version that always succeeds
	if err := RegisterValidation("dupe_tag", func(fl FieldLevel) bool { return true }); err != nil {
		t.Fatalf("unexpected error on second register: %v", err)
	}

	type S struct {
		N int `json:"n" validate:"dupe_tag"`
	}

	// should pass because the second registration returns true
	if err := Get().Validator.Struct(S{N: 0}); err != nil {
		t.Fatalf("expected validation to pass after overwrite, got %v", err)
	}
}
