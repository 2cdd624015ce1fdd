package http

import (
	"net/http"

	"keywordscout/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler. The body is
// bound and validated before fn runs; a returned Response passes through
// untouched, anything else is wrapped in a 200 envelope
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
