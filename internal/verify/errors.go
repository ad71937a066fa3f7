package verify

import "errors"

var (
	ErrInvalidSignature   = errors.New("invalid request signature")
	ErrStaleRequest       = errors.New("stale request timestamp")
	ErrUnknownApplication = errors.New("unknown application id")
	ErrUpstreamFetch      = errors.New("cannot fetch signing certificate")
)
