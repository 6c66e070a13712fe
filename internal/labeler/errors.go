package labeler

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when a required field of a webhook payload
// is missing or has an unexpected type.
var ErrMalformedPayload = errors.New("malformed payload")

func malformedPayloadErr(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedPayload, field, reason)
}
