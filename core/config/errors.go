package config

import "errors"

var (
	ErrFileNotFound = errors.New("config file not found")
	ErrMissingKey   = errors.New("missing required key")
	ErrInvalidValue = errors.New("invalid config value")
	ErrParse        = errors.New("failed to parse config")
)

// MissingKeyError names the first required key that is absent or empty.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return ErrMissingKey.Error() + ": " + e.Key
}

// Is lets errors.Is(err, ErrMissingKey) match.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// InvalidValueError names a key whose value could not be decoded.
type InvalidValueError struct {
	Key string
	Err error
}

func (e *InvalidValueError) Error() string {
	return ErrInvalidValue.Error() + ": " + e.Key + ": " + e.Err.Error()
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}
