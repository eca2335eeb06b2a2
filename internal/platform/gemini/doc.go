// Package gemini provides an implementation of the enrich.Analyzer interface
// backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it renders the analysis prompt,
// asks Gemini for a JSON reply and converts that reply into a
// domain.Analysis. Failures are translated into the enrich error set:
//
//   - transport and API errors become enrich.ErrTransientFailure, so the
//     enrich.Retrying wrapper can retry them
//   - safety blocks become enrich.ErrContentBlocked
//   - empty or non-JSON replies become enrich.ErrInvalidResponse
//
// Retries are not performed here.
package gemini
