package llm

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	retryable := &RetryableError{StatusCode: 429, Message: "rate limited"}
	if !IsRetryable(retryable) {
		t.Error("RetryableError should be retryable")
	}
	if !IsRetryable(fmt.Errorf("wrapped: %w", retryable)) {
		t.Error("wrapped RetryableError should be retryable")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("plain error should not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil should not be retryable")
	}
}

func TestBackoff(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		if d < time.Second {
			t.Errorf("attempt %d: backoff %v below base", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v above cap plus jitter", attempt, d)
		}
	}

	// Later attempts should not shrink below earlier bases.
	if Backoff(3) < 2*time.Second {
		t.Errorf("attempt 3 backoff unexpectedly small: %v", Backoff(3))
	}
}

func TestStripCodeBlock(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  plain reply  ", "plain reply"},
		{"```json\n{\"nested\":\"```\"}\n```", "{\"nested\":\"```\"}"},
	}
	for _, c := range cases {
		if got := StripCodeBlock(c.in); got != c.want {
			t.Errorf("StripCodeBlock(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRetryableError_Message(t *testing.T) {
	err := &RetryableError{StatusCode: 503, Message: "upstream overloaded"}
	if msg := err.Error(); msg == "" {
		t.Fatal("empty error message")
	}
	long := &RetryableError{StatusCode: 500, Message: string(make([]byte, 1000))}
	if len(long.Error()) > 300 {
		t.Errorf("error message not truncated: %d chars", len(long.Error()))
	}
}
