// Package batch drives the pipeline over many images: input discovery,
// a worker pool fanning one pipeline invocation out per image, output
// writing, and an optional JSON manifest of per-image results.
//
// Because every pipeline invocation is stateless, the pool needs no
// locking beyond result collection; each worker writes to its own result
// slot. A failed image is logged and skipped, since partial success is the
// normal mode for large photo batches; setup failures (unreadable inputs,
// unwritable output directory) abort the run.
package batch
