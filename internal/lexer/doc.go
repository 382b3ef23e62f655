// Package lexer turns plan source text into tokens.
//
// The lexer is a hand-written byte dispatcher over a source.File. Scan
// returns raw tokens, hidden whitespace and comments included, so that the
// concatenated Text of every token reproduces the input exactly. Next and
// Peek return only significant tokens and attach the hidden ones in front
// of them as Leading trivia; trailing trivia ends up on EOF.
//
// Identifiers are scanned to their maximal run before the keyword table is
// consulted, so "Startup" is an identifier while "Start" and
// "StartCondition" are both the start-condition keyword. Operators prefer
// the longest spelling. Numbers keep their raw lexeme.
//
// Lexical errors never abort the process. Each produces an Invalid token
// covering the offending input and an *Error, forwarded to Options.Reporter.
// ModeCollectAll keeps scanning; ModeFailFast returns EOF after the first
// error. Save and Restore snapshot the cursor; nothing else is stateful.
package lexer
