// Package generator implements the first pass of the pipeline: prompting the
// generation service for multiple-choice questions over a chunk of legal
// text and strict-parsing the response into complete records. Malformed
// blocks are counted and dropped, never repaired.
package generator
