package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryTools represents missing or unusable executables.
	CategoryTools IssueCategory = "tools"
	// CategoryConfig represents unreadable or invalid config files.
	CategoryConfig IssueCategory = "config"
	// CategoryRepo represents repository state that would break a run.
	CategoryRepo IssueCategory = "repo"
)

// Severity tells whether an issue blocks a run.
type Severity int

const (
	// Warning issues only affect optional features.
	Warning Severity = iota
	// Error issues make every branch of a run fail.
	Error
)

// FixAction names the repair --fix applies.
type FixAction string

const (
	// FixNone marks issues that must be resolved by hand.
	FixNone FixAction = ""
	// FixFetchMain fetches the main branch from the remote.
	FixFetchMain FixAction = "fetch_main"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // what the issue is about: a tool, file or ref
	Description string        // human-readable description
	Hint        string        // how to resolve it by hand
	FixAction   FixAction     // what --fix would do
	Category    IssueCategory // issue category
	Severity    Severity
}

// Fixable reports whether --fix can resolve the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != FixNone
}
