package ptero

import "time"

// NewResponseAt exposes the clock-injected constructor to tests.
var NewResponseAt = newResponseAt

// RetryAfterAt exposes the clock-injected retry computation to tests.
func (r *Response) RetryAfterAt(now time.Time) (int, bool) {
	return r.retryAfterAt(now)
}
