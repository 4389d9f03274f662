package errorreport

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Headers never forwarded to the reporting backend.
var sensitiveHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
}

// Middleware wraps handlers with error capture. Unhandled panics are
// captured, reported through the hook, and answered with a 500 instead of
// being re-raised; 5xx responses are reported as handler errors. When the
// reporter never registered the middleware installs nothing and requests
// flow through untouched.
func Middleware(reporter *Reporter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		hook := reporter.Hook()
		if hook == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			defer func() {
				if rec := recover(); rec != nil {
					hook(fmt.Errorf("panic: %v", rec), requestInfo(r), routeInfo(r))
					if !rw.wrote {
						http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(rw, r)

			if rw.statusCode >= 500 {
				hook(fmt.Errorf("handler returned %d", rw.statusCode), requestInfo(r), routeInfo(r))
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	wrote      bool
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.wrote = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wrote = true
	return rw.ResponseWriter.Write(b)
}

func requestInfo(r *http.Request) RequestInfo {
	headers := make(map[string]string)
	for key := range r.Header {
		if sensitiveHeaders[key] {
			continue
		}
		headers[key] = r.Header.Get(key)
	}
	return RequestInfo{
		Path:    r.URL.Path,
		Method:  r.Method,
		Headers: headers,
	}
}

func routeInfo(r *http.Request) RouteInfo {
	info := RouteInfo{
		RouterKind: "mux",
		RouteType:  "handler",
		RenderType: "dynamic",
	}
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			info.RoutePath = tpl
		}
	}
	return info
}
