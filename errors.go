package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTiming is returned when a timing is recorded with an end
	// timestamp earlier than its start timestamp. The sample is discarded.
	ErrInvalidTiming = errors.New("metrics: end timestamp earlier than start")

	// ErrUnpairedLabel is returned by LabelPairs when the number of
	// key/value strings is odd.
	ErrUnpairedLabel = errors.New("metrics: odd number of label key/value strings")

	// ErrAlreadyInstalled is returned by Receiver.Install when another
	// receiver has already been installed as the process default.
	ErrAlreadyInstalled = errors.New("metrics: default receiver already installed")
)

// KindMismatchError is returned when an identity already bound to one metric
// kind is requested as another. The existing cell is left untouched.
type KindMismatchError struct {
	Key       Key
	Existing  Kind
	Requested Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf(
		"metrics: %s already registered as a %s, requested as a %s",
		e.Key.String(),
		e.Existing,
		e.Requested,
	)
}

// ConfigError is returned by NewReceiver when an option carries an invalid
// value. Invalid options are never silently defaulted.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("metrics: invalid %s: %s", e.Option, e.Reason)
}
