// Package token defines lexical token kinds for declaration skeleton files.
// Invariants:
//   - Token.Text is the identifier text after NFC normalisation; for every
//     other kind it is the exact source slice.
//   - Token.Span covers the original source bytes.
//   - Annotations (shared, formal, default, actual, variable, abstract) are
//     keywords; they are never valid identifiers.
//   - Built-in type names (Integer, String, ...) are identifiers resolved
//     by the binder against the language package.
package token
