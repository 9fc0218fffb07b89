package htmx

import (
	"net/http"
	"strings"
)

const (
	headerRequest    = "HX-Request"
	headerTrigger    = "HX-Trigger"
	headerCurrentURL = "HX-Current-URL"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerRequest), "true")
}

// CurrentURL is the page URL htmx sent the request from, or "".
func CurrentURL(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerCurrentURL))
}

// TriggerHeader builds response headers firing a client-side event.
func TriggerHeader(event string) http.Header {
	h := http.Header{}
	h.Set(headerTrigger, event)
	return h
}
