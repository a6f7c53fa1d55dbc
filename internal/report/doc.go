// Package report prints the progress and results of a run.
//
// [Reporter] implements processor.Observer and writes human-readable step
// lines as each branch is processed. [Summary] and [Table] render the end
// of a run, and [NewJSON] converts a summary for --json output.
package report
