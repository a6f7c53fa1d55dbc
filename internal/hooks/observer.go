package hooks

import (
	"io"

	"github.com/raphi011/rebump/internal/config"
	"github.com/raphi011/rebump/internal/processor"
)

// Observer runs the selected hooks whenever a branch finished.
type Observer struct {
	processor.NopObserver

	onSuccess []HookMatch
	onFailure []HookMatch
	base      Context
	out       io.Writer
}

// NewObserver selects the hooks for both outcomes up front so an unknown
// --hook name fails before any branch is touched. base supplies every
// placeholder except the per-branch ones.
func NewObserver(hooks map[string]config.Hook, hookName string, noHook bool, base Context, out io.Writer) (*Observer, error) {
	onSuccess, err := SelectHooks(hooks, hookName, noHook, TriggerSuccess)
	if err != nil {
		return nil, err
	}
	onFailure, err := SelectHooks(hooks, hookName, noHook, TriggerFailure)
	if err != nil {
		return nil, err
	}
	return &Observer{onSuccess: onSuccess, onFailure: onFailure, base: base, out: out}, nil
}

// Empty reports whether no hook can ever run.
func (o *Observer) Empty() bool {
	return len(o.onSuccess) == 0 && len(o.onFailure) == 0
}

// BranchFinished runs the hooks matching the job's outcome.
func (o *Observer) BranchFinished(job *processor.Job) {
	matches := o.onSuccess
	if job.Status == processor.Failed {
		matches = o.onFailure
	}
	if len(matches) == 0 {
		return
	}

	hc := o.base
	hc.Branch = job.Branch
	hc.Status = job.Status.String()
	hc.Reason = job.Reason
	RunForEach(matches, hc, o.out)
}
