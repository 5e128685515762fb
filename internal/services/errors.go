package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrNetwork       = errors.New("network error")
	ErrTimeout       = errors.New("timeout")
	ErrStatus        = errors.New("unexpected status")
	ErrDecode        = errors.New("decode error")
)

// Kind is the coarse failure classification reported by probes, lookups and
// downloads. Callers branch on it instead of inspecting error strings.
type Kind int

const (
	KindSuccess Kind = iota
	KindNetwork
	KindTimeout
	KindStatus
	KindDecode
	KindNotFound
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNetwork:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "bad_status"
	case KindDecode:
		return "decode_error"
	case KindNotFound:
		return "not_found"
	default:
		return "other"
	}
}

// KindOf maps an error produced by this module onto a Kind. A nil error is a
// success.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrStatus):
		return KindStatus
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindOther
	}
}

// ClassifyTransport tags an error returned by an HTTP client round trip with
// ErrTimeout or ErrNetwork. Errors that already carry a marker are returned as is.
func ClassifyTransport(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindOther {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
