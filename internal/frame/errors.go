package frame

import "errors"

var (
	ErrTruncated       = errors.New("frame: truncated")
	ErrPayloadTooLarge = errors.New("frame: payload too large")
)
