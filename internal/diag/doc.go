// Package diag defines the diagnostic model shared by the lexer, the driver
// and the CLI.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// ID (LEX1001, IO4001, PRJ5001), a short Message, the Primary span and
// optional Notes. Producers emit through a Reporter so they stay decoupled
// from storage; BagReporter collects into a Bag, DedupReporter filters
// repeated reports before forwarding.
//
// Package diag does no IO. Rendering lives in internal/tokfmt, golden
// formatting for tests lives here because it only needs a FileSet.
package diag
