package report

import (
	"github.com/raphi011/rebump/internal/processor"
	"github.com/raphi011/rebump/internal/rewrite"
)

// JSONSummary is the --json representation of a run.
type JSONSummary struct {
	DryRun    bool         `json:"dry_run"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Branches  []JSONBranch `json:"branches"`
}

// JSONBranch is the --json representation of one branch job.
type JSONBranch struct {
	Branch      string     `json:"branch"`
	Status      string     `json:"status"`
	Step        string     `json:"step"`
	Reason      string     `json:"reason,omitempty"`
	Error       string     `json:"error,omitempty"`
	Files       []string   `json:"files"`
	Updated     []string   `json:"updated"`
	Skipped     []JSONSkip `json:"skipped,omitempty"`
	Committed   bool       `json:"committed"`
	Rebased     bool       `json:"rebased"`
	Pushed      bool       `json:"pushed"`
	Suggestions []string   `json:"suggestions,omitempty"`
	Commands    []string   `json:"commands,omitempty"`
}

// JSONSkip names a file that could not be rewritten.
type JSONSkip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// NewJSON converts a run summary for JSON output.
func NewJSON(sum processor.Summary, dryRun bool) JSONSummary {
	out := JSONSummary{
		DryRun:    dryRun,
		Total:     sum.Total,
		Succeeded: sum.Succeeded,
		Failed:    sum.Failed,
		Branches:  make([]JSONBranch, 0, len(sum.Jobs)),
	}
	for _, j := range sum.Jobs {
		b := JSONBranch{
			Branch:      j.Branch,
			Status:      j.Status.String(),
			Step:        j.Step.String(),
			Reason:      j.Reason,
			Files:       nonNil(j.Files),
			Updated:     []string{},
			Committed:   j.Committed,
			Rebased:     j.Rebased,
			Pushed:      j.Pushed,
			Suggestions: j.Suggestions,
			Commands:    j.Commands,
		}
		if j.Err != nil {
			b.Error = j.Err.Error()
		}
		for _, o := range j.Outcomes {
			switch o.Status {
			case rewrite.Updated:
				b.Updated = append(b.Updated, o.Path)
			case rewrite.Skipped:
				b.Skipped = append(b.Skipped, JSONSkip{Path: o.Path, Reason: o.Reason()})
			}
		}
		out.Branches = append(out.Branches, b)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
