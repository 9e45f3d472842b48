// Package ollama is the client for the local language-generation service.
//
// The pipeline consumes the Service interface: Chat for the conversational
// generation endpoint, Generate for plain completions. The concrete Client
// adds exponential-backoff retry, a response LRU cache for low-temperature
// (effectively deterministic) calls, and a Models preflight against the tags
// endpoint.
//
// The core never manages transport concerns beyond this package: callers
// treat any error returned here as non-fatal per record and substitute
// placeholder content rather than aborting a batch.
package ollama
