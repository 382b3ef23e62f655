// Package trace records what the tokenizer is doing: command, phase and
// per-file spans, instant points and error points.
//
// A Tracer is carried in context.Context (WithTracer/FromContext). Events
// go to a stream (text or NDJSON), an in-memory ring dumped on failure, or
// both. Level filters by Scope:
//
//	off     nothing
//	error   error points only
//	phase   driver and phase spans
//	detail  plus per-file spans
//	debug   everything
//
// Enable from the CLI:
//
//	plexlex tokenize --trace=- --trace-level=detail plans/
package trace
