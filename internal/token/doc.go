// Package token defines the lexical vocabulary of the plan language.
// Invariants:
//   - Token.Text is the exact source slice; Span matches Text (Start..End).
//   - Keywords are case-sensitive and only assigned on an exact match of a
//     whole identifier run ("Startup" is an identifier, "Start" is not).
//   - Hidden kinds (Whitespace, LineComment, BlockComment) never reach the
//     significant stream; they are carried as Leading trivia instead.
//   - Symbolic and spelled logical operators share kinds (&& and AND).
package token
