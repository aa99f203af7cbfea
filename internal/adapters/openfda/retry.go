package openfda

import "time"

// backoff is the retry state machine: an attempt counter with a doubling
// delay schedule and a hard attempt cap. Keeping the state explicit lets
// tests drive it with a fake sleeper instead of nested control flow.
type backoff struct {
	attempt     int
	maxAttempts int
	base        time.Duration
}

func newBackoff(maxAttempts int, base time.Duration) *backoff {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if base <= 0 {
		base = time.Second
	}
	return &backoff{maxAttempts: maxAttempts, base: base}
}

// Next returns the delay to wait before the following attempt. The second
// return value is false once the attempt budget is spent; callers must then
// stop retrying. With the defaults the schedule is 1s, 2s, 4s between the
// four attempts.
func (b *backoff) Next() (time.Duration, bool) {
	if b.attempt >= b.maxAttempts-1 {
		return 0, false
	}
	delay := b.base << b.attempt
	b.attempt++
	return delay, true
}

// Attempts reports how many attempts have been started beyond the first.
func (b *backoff) Attempts() int {
	return b.attempt + 1
}

// retryable classifies HTTP statuses into the transient failure set. Rate
// limiting (429) is transient-class on this API; other 4xx are terminal.
func retryable(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
