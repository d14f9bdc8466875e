package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestUpstreamError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"deadline", fmt.Errorf("news: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, CodeUpstreamTimeout},
		{"canceled", context.Canceled, http.StatusInternalServerError, CodeInternal},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
		{"app error", BadRequestError("q", "q is required"), http.StatusBadRequest, CodeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UpstreamError("failed to fetch news", tc.err)
			if got.Status != tc.status || got.Code != tc.code {
				t.Errorf("got %d/%s, want %d/%s", got.Status, got.Code, tc.status, tc.code)
			}
		})
	}
}

func TestUpstreamErrorKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("GET https://newsapi.org/v2/everything?apiKey=secret")
	e := UpstreamError("failed to fetch news", cause)
	if strings.Contains(e.Message, "secret") {
		t.Errorf("message leaks cause: %q", e.Message)
	}
	if !errors.Is(e, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestWithParam(t *testing.T) {
	e := BadRequestErrorf("category", "unknown category %q", "sports").WithParam("allowed", []string{"stock"})
	if e.Message != `unknown category "sports"` {
		t.Errorf("message = %q", e.Message)
	}
	if _, ok := e.Params["allowed"]; !ok {
		t.Error("allowed param missing")
	}
}
