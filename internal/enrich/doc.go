// Package enrich defines the boundary between the study service and the
// language models that produce word analyses (root, mnemonic, a short
// dialogue and its translation). Providers live under internal/platform;
// this package owns the request/response contract, the prompt and the
// retry wrapper applied around any provider.
package enrich
