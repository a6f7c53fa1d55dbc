package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/rebump/internal/format"
	"github.com/raphi011/rebump/internal/processor"
	"github.com/raphi011/rebump/internal/rewrite"
	"github.com/raphi011/rebump/internal/ui/static"
	"github.com/raphi011/rebump/internal/ui/styles"
)

// Options controls what the Reporter prints.
type Options struct {
	DryRun       bool
	Substitution rewrite.Substitution
	ShowDiff     bool                 // print diffs of updated files
	DiffStyle    string               // chroma style name
	Profile      colorprofile.Profile // decides whether diffs are highlighted
}

// Reporter writes per-branch progress lines.
type Reporter struct {
	w    io.Writer
	opts Options
}

// New returns a Reporter writing to w.
func New(w io.Writer, opts Options) *Reporter {
	return &Reporter{w: w, opts: opts}
}

var _ processor.Observer = (*Reporter)(nil)

const indent = "  "

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.w, indent+s)
}

// BranchStarted prints the branch header.
func (r *Reporter) BranchStarted(job *processor.Job, index, total int) {
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s %s\n",
		styles.HeaderStyle.Render(fmt.Sprintf("[%d/%d]", index, total)),
		styles.BranchStyle.Render(job.Branch))
}

// StepFinished prints the result of a completed step.
func (r *Reporter) StepFinished(job *processor.Job, step processor.Step) {
	switch step {
	case processor.StepCheckout:
		r.line(styles.OK(r.verb("checked out", "would check out") + " " + job.Branch))
	case processor.StepResolve:
		if len(job.Files) == 0 {
			r.line(styles.Warn("no files changed on this branch, skipping"))
			return
		}
		r.line(styles.OK(fmt.Sprintf("%s changed since %s: %s",
			plural(len(job.Files), "file"), job.Refs.Main, strings.Join(job.Files, ", "))))
	case processor.StepRewrite:
		r.rewriteLines(job)
	case processor.StepCommit:
		r.line(styles.OK(r.verb("committed", "would commit") + " " + plural(job.Updated(), "updated file")))
	case processor.StepRebase:
		r.line(styles.OK(r.verb("rebased onto", "would rebase onto") + " " + job.Refs.Main))
	case processor.StepPush:
		r.line(styles.OK(r.verb("pushed", "would push") + " " + job.Branch))
	}
}

func (r *Reporter) verb(done, dry string) string {
	if r.opts.DryRun {
		return dry
	}
	return done
}

func (r *Reporter) rewriteLines(job *processor.Job) {
	for _, o := range job.Outcomes {
		switch o.Status {
		case rewrite.Updated:
			r.line(styles.OK(fmt.Sprintf("updated %s (%s)", o.Path, countsText(o.Counts))))
			if r.opts.ShowDiff && o.Diff != "" {
				diff := format.HighlightDiff(o.Diff, r.opts.DiffStyle, r.opts.Profile)
				fmt.Fprint(r.w, format.Indent(diff, indent+indent))
			}
		case rewrite.Unchanged:
			r.line(styles.Skip(fmt.Sprintf("%s: no occurrence of %s", o.Path, r.opts.Substitution.Old)))
		case rewrite.Skipped:
			r.line(styles.Warn(fmt.Sprintf("skipped %s: %s", o.Path, o.Reason())))
		}
	}
	if job.Updated() == 0 {
		r.line(styles.Skip(fmt.Sprintf("no files were updated (%s not found or already updated)", r.opts.Substitution.Old)))
	}
}

// BranchFinished prints recorded commands and the branch result.
func (r *Reporter) BranchFinished(job *processor.Job) {
	if len(job.Commands) > 0 {
		r.line(styles.InfoStyle.Render("would run:"))
		for _, c := range job.Commands {
			r.line(indent + styles.Command(c))
		}
	}

	if job.Status == processor.Succeeded {
		r.line(styles.OK("completed " + job.Branch))
		return
	}

	msg := job.Reason
	if job.Err != nil && job.Err.Error() != job.Reason {
		msg = job.Err.Error()
	}
	r.line(styles.Fail(msg))
	if len(job.Suggestions) > 0 {
		r.line(styles.InfoStyle.Render("did you mean: " + strings.Join(job.Suggestions, ", ") + "?"))
	}
}

// Summary returns the final summary line.
func Summary(sum processor.Summary) string {
	return fmt.Sprintf("Summary: %d/%d branches processed successfully", sum.Succeeded, sum.Total)
}

// Table renders one row per branch.
func Table(sum processor.Summary) string {
	rows := make([][]string, 0, len(sum.Jobs))
	for _, j := range sum.Jobs {
		updated, _, skipped := rewrite.Tally(j.Outcomes)
		detail := ""
		if j.Status == processor.Failed {
			detail = j.Reason
		} else if len(j.Files) == 0 {
			detail = "no files changed"
		}
		rows = append(rows, []string{
			j.Branch,
			statusText(j),
			fmt.Sprint(len(j.Files)),
			fmt.Sprint(updated),
			fmt.Sprint(skipped),
			detail,
		})
	}
	return static.Table{
		Headers: []string{"BRANCH", "STATUS", "FILES", "UPDATED", "SKIPPED", "DETAIL"},
		Rows:    rows,
		Numeric: []int{2, 3, 4},
	}.Render()
}

func statusText(j *processor.Job) string {
	if j.Status == processor.Succeeded {
		return styles.SuccessStyle.Render(j.Status.String())
	}
	return styles.ErrorStyle.Render(j.Status.String() + " at " + j.Step.String())
}

func countsText(c rewrite.Counts) string {
	var parts []string
	for f := rewrite.Bare; f <= rewrite.Assignment; f++ {
		if n := c[f]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, f))
		}
	}
	if len(parts) == 0 {
		return "no replacements"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
