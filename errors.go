package slotmap

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2, and wrapped out of
// New, when a size that must be a power of two is not.
var PowerOfTwoError error = errors.New("number must be a power of two")

// ConfigurationError is wrapped and returned from New when a CreateOptions
// field is outside its documented range.
var ConfigurationError error = errors.New("invalid slot map configuration")
