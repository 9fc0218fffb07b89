package request

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDayFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		currentURL string
		want       string
		wantOK     bool
	}{
		{name: "query", target: "/day?date=2024-03-01", want: "2024-03-01", wantOK: true},
		{name: "current_url", target: "/habits/h1/toggle", currentURL: "http://localhost:8080/day?date=2024-02-29", want: "2024-02-29", wantOK: true},
		{name: "query_wins", target: "/x?date=2024-01-01", currentURL: "http://localhost/day?date=2024-02-02", want: "2024-01-01", wantOK: true},
		{name: "invalid", target: "/day?date=tomorrow"},
		{name: "missing", target: "/day"},
		{name: "bad_current_url", target: "/day", currentURL: "://bad"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, test.target, nil)
			if test.currentURL != "" {
				req.Header.Set("HX-Current-URL", test.currentURL)
			}
			day, ok := DayFromRequest(req)
			if ok != test.wantOK {
				t.Fatalf("ok = %v, want %v", ok, test.wantOK)
			}
			if ok && day.String() != test.want {
				t.Fatalf("day = %s, want %s", day, test.want)
			}
		})
	}
}
