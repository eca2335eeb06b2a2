// Package api adapts HTTP requests to the study service. Handlers decode and
// validate command bodies, read the session id placed in the context by the
// auth middleware, and answer with service snapshots or sanitized errors.
package api
