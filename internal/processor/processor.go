package processor

import (
	"context"

	"github.com/raphi011/rebump/internal/format"
	"github.com/raphi011/rebump/internal/git"
	"github.com/raphi011/rebump/internal/log"
	"github.com/raphi011/rebump/internal/resolve"
	"github.com/raphi011/rebump/internal/rewrite"
)

// Options configures a Processor.
type Options struct {
	Main            string // integration branch name
	Remote          string // remote to fetch from and push to; empty disables both
	BaseRef         string // resolve.BaseRefRemote or resolve.BaseRefLocal
	Push            bool
	DryRun          bool
	MessageTemplate string // commit message with {old}, {new} and {branch}
	Substitution    rewrite.Substitution
}

// recorder is implemented by git.DryRun.
type recorder interface {
	Drain() []string
}

// Processor runs the update workflow for a list of branches.
// A Processor is not safe for concurrent use.
type Processor struct {
	gw       git.Gateway
	root     string
	opts     Options
	Observer Observer
}

// New returns a Processor that runs git through gw in the repository at root.
func New(gw git.Gateway, root string, opts Options) *Processor {
	if opts.MessageTemplate == "" {
		opts.MessageTemplate = format.DefaultCommitMessage
	}
	if opts.BaseRef == "" {
		opts.BaseRef = resolve.BaseRefRemote
	}
	return &Processor{gw: gw, root: root, opts: opts, Observer: NopObserver{}}
}

// Run processes branches in order and returns the summary. Every branch
// ends as Succeeded or Failed; a failure never stops the remaining branches.
func (p *Processor) Run(ctx context.Context, branches []string) Summary {
	l := log.FromContext(ctx)

	start := p.gw.CurrentBranch(ctx)
	startRef := start.Line()
	if !start.OK() {
		l.Debug("could not determine starting branch", "err", start.Err())
		startRef = ""
	}

	// Make remote-only branches visible to checkout.
	if p.opts.Remote != "" {
		if res := p.gw.Fetch(ctx, p.opts.Remote); !res.OK() {
			l.Printf("Warning: fetch %s failed: %v\n", p.opts.Remote, res.Err())
		}
	}

	var sum Summary
	if r, ok := p.gw.(recorder); ok {
		sum.Commands = r.Drain()
	}
	for i, branch := range branches {
		job := &Job{Branch: branch}
		p.Observer.BranchStarted(job, i+1, len(branches))

		if err := ctx.Err(); err != nil {
			job.fail(StepCheckout, ReasonInterrupted, err)
		} else {
			p.process(ctx, job)
			p.restore(ctx, startRef)
		}

		if r, ok := p.gw.(recorder); ok {
			job.Commands = r.Drain()
		}
		p.Observer.BranchFinished(job)
		sum.add(job)
	}
	return sum
}

// Process runs the workflow for a single branch without switching back.
func (p *Processor) Process(ctx context.Context, branch string) *Job {
	job := &Job{Branch: branch}
	p.process(ctx, job)
	if r, ok := p.gw.(recorder); ok {
		job.Commands = r.Drain()
	}
	return job
}

func (p *Processor) process(ctx context.Context, job *Job) {
	l := log.FromContext(ctx)
	job.Status = Pending

	// Checkout
	job.Step = StepCheckout
	if res := p.gw.Checkout(ctx, job.Branch); !res.OK() {
		job.fail(StepCheckout, ReasonCheckout, &StepError{Step: StepCheckout, Reason: ReasonCheckout, Result: res})
		job.Suggestions = p.suggestions(ctx, job.Branch)
		return
	}
	p.Observer.StepFinished(job, StepCheckout)

	// Resolve
	job.Step = StepResolve
	job.Refs = resolve.RefsFor(ctx, p.gw, job.Branch, resolve.Options{
		MainBranch: p.opts.Main,
		Remote:     p.opts.Remote,
		BaseRef:    p.opts.BaseRef,
	})
	files, err := resolve.ChangedFiles(ctx, p.gw, job.Refs)
	if err != nil {
		job.fail(StepResolve, ReasonResolve, err)
		return
	}
	job.Files = files
	p.Observer.StepFinished(job, StepResolve)
	if len(files) == 0 {
		l.Debug("no changed files", "branch", job.Branch)
		job.Step = StepDone
		job.Status = Succeeded
		return
	}

	// Rewrite
	job.Step = StepRewrite
	job.Outcomes = rewrite.New(p.fileSystem(job)).RewriteAll(ctx, files, p.opts.Substitution)
	for _, o := range job.Outcomes {
		if o.Status == rewrite.Skipped {
			l.Debug("skipped file", "branch", job.Branch, "path", o.Path, "reason", o.Reason())
		}
	}
	p.Observer.StepFinished(job, StepRewrite)

	// Commit
	if job.Updated() > 0 {
		job.Step = StepCommit
		msg := format.CommitMessage(p.opts.MessageTemplate, format.MessageParams{
			Old:    p.opts.Substitution.Old,
			New:    p.opts.Substitution.New,
			Branch: job.Branch,
		})
		if res := p.gw.CommitAll(ctx, msg, files); !res.OK() {
			job.fail(StepCommit, ReasonCommit, &StepError{Step: StepCommit, Reason: ReasonCommit, Result: res})
			return
		}
		job.Committed = true
		p.Observer.StepFinished(job, StepCommit)
	}

	// Rebase
	job.Step = StepRebase
	if p.opts.Remote != "" {
		if res := p.gw.Fetch(ctx, p.opts.Remote, p.opts.Main); !res.OK() {
			job.fail(StepRebase, ReasonFetch, &StepError{Step: StepRebase, Reason: ReasonFetch, Result: res})
			return
		}
	}
	if res := p.gw.Rebase(ctx, job.Refs.Main); !res.OK() {
		job.fail(StepRebase, ReasonRebase, &StepError{Step: StepRebase, Reason: ReasonRebase, Result: res})
		return
	}
	job.Rebased = true
	p.Observer.StepFinished(job, StepRebase)

	// Push
	if p.opts.Push && p.opts.Remote != "" {
		job.Step = StepPush
		if res := p.gw.PushForceWithLease(ctx, p.opts.Remote, job.Branch); !res.OK() {
			job.fail(StepPush, ReasonPush, &StepError{Step: StepPush, Reason: ReasonPush, Result: res})
			return
		}
		job.Pushed = true
		p.Observer.StepFinished(job, StepPush)
	}

	job.Step = StepDone
	job.Status = Succeeded
}

// fileSystem returns where the branch's files are read from. A dry run never
// checks the branch out, so it reads the committed content at the branch ref.
func (p *Processor) fileSystem(job *Job) rewrite.FileSystem {
	if p.opts.DryRun {
		return rewrite.NewRefFS(p.gw, job.Refs.Branch)
	}
	return rewrite.DirFS{Root: p.root}
}

func (p *Processor) suggestions(ctx context.Context, branch string) []string {
	res := p.gw.ListBranches(ctx)
	if !res.OK() {
		return nil
	}
	return suggest(branch, branchNames(res.Lines(), p.opts.Remote))
}

// restore switches back to ref. Failures are logged and never change the
// outcome of the branch that was just processed.
func (p *Processor) restore(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if cur := p.gw.CurrentBranch(ctx); cur.OK() && cur.Line() == ref {
		return
	}
	if res := p.gw.SwitchTo(ctx, ref); !res.OK() {
		log.FromContext(ctx).Printf("Warning: could not switch back to %s: %v\n", ref, res.Err())
	}
}
