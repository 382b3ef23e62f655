// Package source owns source buffers and position bookkeeping: file ids,
// byte spans and 1-based line/column resolution.
package source
