package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name   string
		attach func(*http.Request)
		want   bool
	}{
		{"json body", func(r *http.Request) {
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}, true},
		{"json body with charset", func(r *http.Request) {
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
		}, true},
		{"form body", func(r *http.Request) {
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		}, false},
		{"bearer token, no body", func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
		}, true},
		{"json accept header", func(r *http.Request) {
			r.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		}, true},
		{"bare browser request", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.attach != nil {
				tt.attach(req)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			if got := wantsJSON(c); got != tt.want {
				t.Fatalf("wantsJSON = %v, want %v", got, tt.want)
			}
		})
	}
}
