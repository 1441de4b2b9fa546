// Package compose implements compose sequences: chains of keystrokes that
// produce a single result, such as "'" followed by "e" producing "é".
//
// All sequence tables are compiled into one trie stored in two parallel
// arrays. Each table is entered through its own root state, so dead-key
// accents, the shift and fn layers and numpad scripts share the same
// matcher as the compose key.
//
// The states array holds, per node:
//
//   - A header cell. 0 marks an intermediate node whose remaining cells
//     are the accepted characters, sorted ascending.
//   - A positive header is a character result; the node spans one cell.
//   - A header of -1 is a string result; the code points of the string
//     follow the header.
//
// For a header cell, the edges array holds the span of the node. For a
// transition cell it holds the index of the node to jump to.
package compose
