package provider

import "errors"

var (
	// ErrNotConfigured is returned before any network call when the
	// aggregator credentials are missing.
	ErrNotConfigured = errors.New("the aggregator client is not configured, set AGGREGATOR_CLIENT_ID and AGGREGATOR_SECRET")

	// ErrUpstream is returned for non-2xx responses from the aggregator.
	ErrUpstream = errors.New("the aggregator returned an error")

	// ErrDecode is returned when a response body cannot be parsed. It is
	// distinct from ErrUpstream so callers can tell "their service is
	// down" from "we cannot parse the response".
	ErrDecode = errors.New("the aggregator response could not be decoded")
)
