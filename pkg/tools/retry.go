/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package tools

import (
	"time"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
)

const (
	RetryStandardRetryCount = 5

	RetryStandardWaitingTime = 5
	RetryStandardNoWaitTime  = 0
)

// Retry - run fClos up to retryCount times until it returns nil.
func Retry(tag string, fClos func() error, retryCount, sleepTimeout int) (err error) {
	for i := 0; i < retryCount; i++ {
		err = fClos()
		if err == nil {
			return nil
		}

		llog.Warnf("Retry '%s', run %d/%d: %v", tag, i, retryCount, err)

		if sleepTimeout > 0 {
			time.Sleep(time.Duration(sleepTimeout) * time.Second)
		}
	}

	return err
}

// PollUntil - call fClos on a fixed interval until it reports done or the
// timeout elapses. Errors from fClos are logged and retried, the resource
// may simply not exist yet.
func PollUntil(tag string, fClos func() (bool, error), interval, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		done, err := fClos()
		if err != nil {
			llog.Warnf("Poll '%s': %v. Retrying in %v", tag, err, interval)
		} else if done {
			return nil
		}

		if time.Now().After(deadline) {
			return merry.Errorf("poll '%s': condition not reached within %v", tag, timeout)
		}

		time.Sleep(interval)
	}
}
