package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"reelkeeper/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "watchdog", "launch", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"watchdog", "launch", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want services.Kind
	}{
		{nil, services.KindSuccess},
		{services.Wrap(services.ErrTimeout, "omdb", "lookup", "", nil), services.KindTimeout},
		{services.Wrap(services.ErrNetwork, "omdb", "lookup", "", nil), services.KindNetwork},
		{fmt.Errorf("%w: 503", services.ErrStatus), services.KindStatus},
		{fmt.Errorf("%w: bad json", services.ErrDecode), services.KindDecode},
		{services.ErrNotFound, services.KindNotFound},
		{errors.New("other"), services.KindOther},
	}
	for _, tc := range cases {
		if got := services.KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	if services.ClassifyTransport(nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	deadline := services.ClassifyTransport(fmt.Errorf("do: %w", context.DeadlineExceeded))
	if services.KindOf(deadline) != services.KindTimeout {
		t.Fatalf("expected timeout for deadline, got %v", deadline)
	}

	urlTimeout := services.ClassifyTransport(&url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}})
	if services.KindOf(urlTimeout) != services.KindTimeout {
		t.Fatalf("expected timeout for url.Error, got %v", urlTimeout)
	}

	refused := services.ClassifyTransport(&url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")})
	if services.KindOf(refused) != services.KindNetwork {
		t.Fatalf("expected network error, got %v", refused)
	}

	tagged := fmt.Errorf("%w: 404", services.ErrStatus)
	if got := services.ClassifyTransport(tagged); got != tagged {
		t.Fatalf("expected already tagged error to pass through, got %v", got)
	}
}
