// SPDX-License-Identifier: MIT

package env

import "errors"

var (
	// ErrInvalidConfig is returned by New for unusable options.
	ErrInvalidConfig = errors.New("env: invalid configuration")

	// ErrNilState is returned when Step receives a nil state.
	ErrNilState = errors.New("env: nil state")

	// ErrActionCount is returned when the action slice length differs from
	// the number of agents.
	ErrActionCount = errors.New("env: action count mismatch")

	// ErrRewardCount is returned when the reward function yields a slice of
	// the wrong length.
	ErrRewardCount = errors.New("env: reward count mismatch")
)
