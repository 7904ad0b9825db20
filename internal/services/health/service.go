package health

import (
	"context"
	"time"
)

const defaultCheckTimeout = 2 * time.Second

// Check probes one dependency. A nil Check reports the dependency as disabled.
type Check func(ctx context.Context) error

// Service encapsulates health-related checks.
type Service struct {
	Checks  map[string]Check
	Info    map[string]any
	Timeout time.Duration
}

// NewService constructs a new health service.
func NewService(checks map[string]Check, info map[string]any) *Service {
	return &Service{Checks: checks, Info: info, Timeout: defaultCheckTimeout}
}

// Status runs every check and returns a health payload. ok is false when any
// configured dependency is down.
func (s *Service) Status(ctx context.Context) map[string]any {
	payload := map[string]any{}
	for k, v := range s.Info {
		payload[k] = v
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ok := true
	for name, check := range s.Checks {
		if check == nil {
			payload[name] = "disabled"
			continue
		}
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		err := check(checkCtx)
		cancel()
		if err != nil {
			ok = false
			payload[name] = "down"
			continue
		}
		payload[name] = "up"
	}
	payload["ok"] = ok
	return payload
}
