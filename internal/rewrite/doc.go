// Package rewrite replaces a literal value inside text files.
//
// The same value shows up in different syntactic positions depending on the
// file format: as a bare token in prose or code, wrapped in quotes in JSON or
// YAML, or on the right-hand side of an assignment in config files. Each
// occurrence of the old value is classified into one of three forms, tried
// in this order:
//
//   - [Quoted]: enclosed by a matching pair of single or double quotes
//   - [Bare]: delimited by whitespace, a line edge or a separator such as
//     a comma, bracket or unpaired quote
//   - [Assignment]: preceded by '=' or ':' with optional spaces or tabs
//
// Occurrences that fit no form are part of a larger token (1.2 inside 1.23,
// v1.2 or 1.2.3) and are left alone. Only the value itself is replaced;
// quotes, operators and spacing around it are preserved.
//
// Files are read and written through a [FileSystem], so the same rewriter
// can work on the checked-out working tree ([DirFS]) or on blobs read from a
// branch without touching the working tree ([RefFS], used for dry runs).
package rewrite
