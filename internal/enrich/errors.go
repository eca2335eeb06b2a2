package enrich

import "errors"

// Common errors returned by analyzers.
var (
	// ErrEnrichmentFailed is returned when analysis fails for any general reason.
	ErrEnrichmentFailed = errors.New("failed to analyze word")

	// ErrInvalidResponse is returned when the model response is not a JSON object.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model refuses the request on safety grounds.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for errors that may resolve on retry.
	ErrTransientFailure = errors.New("transient error during analysis")

	// ErrInvalidConfig is returned when an analyzer is misconfigured.
	ErrInvalidConfig = errors.New("invalid analyzer configuration")

	// ErrDisabled is returned by the analyzer used when no provider is configured.
	ErrDisabled = errors.New("analysis is disabled")
)
