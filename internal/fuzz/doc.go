// Package fuzztests houses Go fuzz harnesses for the lexer. Its goal is to
// guard against panics and broken token streams on arbitrary inputs.
//
// Назначение: загружать байты в FileSet, прогонять их через лексер во всех
// режимах и проверять инварианты testkit (round-trip, смежность спанов).
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag, internal/testkit.

package fuzztests
