package httpkit

import "net/http"

// MountUnder groups a feature's routes below prefix. Middlewares, when given,
// wrap everything the mount callback registers on the subrouter
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
