package semantic

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"resume-matcher/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retrying struct {
	base  Provider
	delay time.Duration
}

// WithRetry retries a transient provider failure once.
func WithRetry(base Provider) Provider {
	if base == nil {
		return nil
	}
	return retrying{base: base, delay: retryBaseDelay}
}

func (r retrying) Analyze(ctx context.Context, resumeText, jobText string) (Analysis, error) {
	analysis, err := r.base.Analyze(ctx, resumeText, jobText)
	if err == nil || !shouldRetry(err) {
		return analysis, err
	}

	telemetry.Info("semantic.retry", map[string]any{
		"attempt": 1,
		"error":   err.Error(),
	})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return Analysis{}, ctx.Err()
	}

	return r.base.Analyze(ctx, resumeText, jobText)
}

// Unwrap returns the provider being retried.
func (r retrying) Unwrap() Provider {
	return r.base
}

func shouldRetry(err error) bool {
	if err == nil || errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrInvalidResponse) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "http status 429") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
