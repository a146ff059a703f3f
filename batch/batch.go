// Package batch fans independent alignment problems out across
// goroutines.
//
// The alignment core is strictly single-threaded per problem: one
// trellis, one goroutine, no sharing. Parallelism belongs one level up,
// across unrelated (events, sequence) pairs — which is exactly what
// AlignAll does. Each job gets its own fresh trellis; jobs never share
// state, so no synchronization beyond the fork/join is needed.
package batch

import (
	"github.com/exascience/pargo/parallel"

	"github.com/squigglekit/adaband/align"
)

// Job is one independent alignment problem.
type Job struct {
	Sequence string
	Scorer   align.EmissionScorer
	Ranker   align.KmerRanker
}

// Result holds one job's alignment or its validation error, at the same
// index as the job that produced it.
type Result struct {
	Pairs []align.Pair
	Err   error
}

// AlignAll aligns every job with the shared options, fanning out across
// the available cores. Output order matches input order; a failing job
// never affects its neighbors.
// Complexity: sum of the per-job costs, divided across cores.
func AlignAll(jobs []Job, opts *align.Options) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}
	parallel.Range(0, len(jobs), 0, func(low, high int) {
		for i := low; i < high; i++ {
			pairs, err := align.Align(jobs[i].Sequence, jobs[i].Scorer, jobs[i].Ranker, opts)
			results[i] = Result{Pairs: pairs, Err: err}
		}
	})
	return results
}
