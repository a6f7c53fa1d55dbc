package processor

import (
	"fmt"
	"strings"

	"github.com/raphi011/rebump/internal/cmd"
	"github.com/raphi011/rebump/internal/resolve"
	"github.com/raphi011/rebump/internal/rewrite"
)

// Status is the overall state of a branch job.
type Status int

const (
	Pending Status = iota
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Step is a stage of the per-branch workflow.
type Step int

const (
	StepCheckout Step = iota
	StepResolve
	StepRewrite
	StepCommit
	StepRebase
	StepPush
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepCheckout:
		return "checkout"
	case StepResolve:
		return "resolve"
	case StepRewrite:
		return "rewrite"
	case StepCommit:
		return "commit"
	case StepRebase:
		return "rebase"
	case StepPush:
		return "push"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// Failure reasons reported for the git steps.
const (
	ReasonCheckout    = "checkout failed"
	ReasonResolve     = "could not determine changed files"
	ReasonCommit      = "commit failed"
	ReasonFetch       = "fetch failed"
	ReasonRebase      = "rebase conflict — manual resolution required"
	ReasonPush        = "push rejected (remote changed)"
	ReasonInterrupted = "interrupted"
)

// StepError is the error recorded on a Job that failed at a git step.
type StepError struct {
	Step   Step
	Reason string
	Result cmd.Result
}

func (e *StepError) Error() string {
	if detail := firstLine(e.Result.Stderr); detail != "" {
		return fmt.Sprintf("%s: %s", e.Reason, detail)
	}
	return e.Reason
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Job is the record of one branch passing through the workflow.
type Job struct {
	Branch      string
	Status      Status
	Step        Step   // last step reached
	Err         error  // *StepError or *resolve.Error when Failed
	Reason      string // human-readable failure reason
	Refs        resolve.Refs
	Files       []string // changed files, resolved once
	Outcomes    []rewrite.Outcome
	Committed   bool
	Rebased     bool
	Pushed      bool
	Suggestions []string // similar branch names when checkout failed
	Commands    []string // command lines recorded in dry-run mode
}

// Updated returns the number of files that were rewritten.
func (j *Job) Updated() int {
	updated, _, _ := rewrite.Tally(j.Outcomes)
	return updated
}

func (j *Job) fail(step Step, reason string, err error) {
	j.Status = Failed
	j.Step = step
	j.Reason = reason
	j.Err = err
}

// Summary aggregates the jobs of one run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Jobs      []*Job
	Commands  []string // run-level command lines recorded in dry-run mode
}

// OK reports whether every branch succeeded.
func (s Summary) OK() bool {
	return s.Failed == 0
}

func (s *Summary) add(j *Job) {
	s.Jobs = append(s.Jobs, j)
	s.Total++
	if j.Status == Succeeded {
		s.Succeeded++
	} else {
		s.Failed++
	}
}
