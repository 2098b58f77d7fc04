package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeArtifact, http.StatusInternalServerError},
		{ErrorCodeShape, http.StatusInternalServerError},
		{ErrorCodeInference, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if got := ErrorCodeShape.String(); got != "shape_mismatch" {
		t.Fatalf("String() = %q", got)
	}
	if got := ErrorCode(9999).String(); got != "unknown" {
		t.Fatalf("String() out of range = %q", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeArtifact, "load failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeArtifact {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeInference, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	if got, ok := As(e4); !ok || got.Code() != ErrorCodeInference || got.Message() != "nope here" {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// copy-on-write
	e5 := Wrap(src, ErrorCodeValidation, "oops")
	e6 := WithField(e5, "text")
	e7 := WithOp(e6, "predict")
	if a, _ := As(e5); a.Field() != "" || a.Op() != "" {
		t.Fatalf("mutators changed the original")
	}
	if a, _ := As(e7); a.Field() != "text" || a.Op() != "predict" {
		t.Fatalf("field/op = %q/%q", a.Field(), a.Op())
	}
	if WithField(src, "x") != src || WithOp(src, "x") != src {
		t.Fatalf("mutators should pass foreign errors through")
	}
}

func TestPublic(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation keeps message", Validationf("No 'text' provided for analysis."), "No 'text' provided for analysis."},
		{"unavailable keeps message", Unavailablef("down"), "down"},
		{"json keeps message", JSONErrf("Invalid JSON body: eof"), "Invalid JSON body: eof"},
		{"shape is internal", Shapef("got 3 want 4"), "Internal server error: got 3 want 4"},
		{"wrapped chain", Wrap(stderrs.New("nan"), ErrorCodeInference, "score"), "Internal server error: score: nan"},
		{"foreign error", stderrs.New("boom"), "Internal server error: boom"},
		{"wrapped ours", fmt.Errorf("ctx: %w", PanicErrf("panic recovered")), "Internal server error: panic recovered"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Public(c.err); got != c.want {
				t.Fatalf("Public = %q, want %q", got, c.want)
			}
		})
	}
}

func TestHTTPBundle(t *testing.T) {
	st, w := HTTP(nil)
	if st != http.StatusOK || w.Error != "" {
		t.Fatalf("HTTP(nil) = %d %+v", st, w)
	}
	st, w = HTTP(Unavailablef("not loaded"))
	if st != http.StatusServiceUnavailable || w.Error != "not loaded" {
		t.Fatalf("HTTP(unavailable) = %d %+v", st, w)
	}
	if HTTPStatus(stderrs.New("x")) != http.StatusInternalServerError {
		t.Fatalf("foreign errors map to 500")
	}
	if !IsCode(Artifactf("x"), ErrorCodeArtifact) || IsCode(Artifactf("x"), ErrorCodeShape) {
		t.Fatalf("IsCode mismatch")
	}
	if CodeOf(stderrs.New("x")) != ErrorCodeUnknown {
		t.Fatalf("foreign errors should be unknown")
	}
}
