// Package pipeline sequences detection, rectification, resolution
// normalization, and enhancement into the single public entry point used
// by batch drivers and other callers.
//
// A Pipeline is built once from immutable Params and may be shared freely:
// Process holds no mutable state, so batch callers parallelize by running
// one invocation per image with no locking. Each invocation allocates its
// own buffers and hands ownership stage to stage; nothing survives the
// call.
//
// "No card detected" is a normal outcome recorded in the metadata, never
// an error. Process fails only when a stage genuinely cannot produce
// output, such as a degenerate geometry slipping past the locator's gates.
// Every stage is deterministic, so re-running on the same input and
// parameters yields a byte-identical result; retrying a failure without
// changing the input is pointless.
package pipeline
