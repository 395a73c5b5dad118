package ai

import "errors"

// ErrUnavailable indicates the vision model call failed (network error,
// timeout, auth failure or non-success response). Callers recover by
// switching to the offline fallback analysis.
var ErrUnavailable = errors.New("vision model unavailable")
