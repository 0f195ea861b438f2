package tools

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0

	err := Retry("test", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	}, RetryStandardRetryCount, RetryStandardNoWaitTime)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	failure := errors.New("permanent")

	err := Retry("test", func() error {
		attempts++
		return failure
	}, 4, RetryStandardNoWaitTime)

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
	assert.ErrorIs(t, err, failure)
}

func TestPollUntilDone(t *testing.T) {
	polls := 0

	err := PollUntil("test", func() (bool, error) {
		polls++
		return polls >= 2, nil
	}, time.Millisecond, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 2, polls)
}

func TestPollUntilToleratesErrors(t *testing.T) {
	polls := 0

	err := PollUntil("test", func() (bool, error) {
		polls++
		if polls == 1 {
			return false, errors.New("api not ready")
		}
		return true, nil
	}, time.Millisecond, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 2, polls)
}

func TestPollUntilTimeout(t *testing.T) {
	err := PollUntil("test", func() (bool, error) {
		return false, nil
	}, time.Millisecond, 5*time.Millisecond)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reached")
}
