// Package pipeline coordinates the passes that turn a legal source text into
// a question bank: chunking and generation, second-passage review, and
// feedback-annotated conversion.
//
// Each pass matches questions to source context with the lexical matcher and
// talks to the model through the ollama service. Model calls run on a bounded
// worker pool; per-chunk failures are logged and skipped so one bad call
// never aborts a long run. Run metadata and generated questions are
// persisted when a store is configured.
package pipeline
