package throttle

import (
	"errors"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config defines the request throttle's
// Requests Per Second and Burst Rate.
type Config struct {
	RPS   int
	Burst int
}
