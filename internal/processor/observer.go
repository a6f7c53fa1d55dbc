package processor

// Observer receives progress while the processor runs. Calls are made from
// the goroutine that called Run or Process.
type Observer interface {
	// BranchStarted is called before the first step of a branch.
	BranchStarted(job *Job, index, total int)
	// StepFinished is called after each step that completed without failing.
	StepFinished(job *Job, step Step)
	// BranchFinished is called once the job reached Done or Failed.
	BranchFinished(job *Job)
}

// NopObserver ignores all progress.
type NopObserver struct{}

func (NopObserver) BranchStarted(*Job, int, int) {}
func (NopObserver) StepFinished(*Job, Step)      {}
func (NopObserver) BranchFinished(*Job)          {}

// Observers fans every call out to each observer in order.
type Observers []Observer

func (obs Observers) BranchStarted(job *Job, index, total int) {
	for _, o := range obs {
		o.BranchStarted(job, index, total)
	}
}

func (obs Observers) StepFinished(job *Job, step Step) {
	for _, o := range obs {
		o.StepFinished(job, step)
	}
}

func (obs Observers) BranchFinished(job *Job) {
	for _, o := range obs {
		o.BranchFinished(job)
	}
}
