package solver

import (
	"context"
	"sync"

	"github.com/crystacean/lattice/bitlattice"
)

// SolveParallel fans the search out over the first branch point's candidate
// sites: one goroutine per admissible first choice, each running its own
// searchEngine over the remaining search space, results merged under a
// mutex — the guarded-shared-state idiom core.Graph uses for its vertex and
// edge maps (muVert/muEdgeAdj), applied here to a result slice instead of a
// graph's adjacency structure.
//
// Parallelism only pays off with FindAll: a first-solution search stops all
// workers as soon as any one of them finds a hit.
func SolveParallel(bl *bitlattice.BitLattice, opts Options, workers int) (Result, error) {
	if bl == nil {
		return Result{}, ErrNilLattice
	}
	if workers < 1 {
		workers = 1
	}

	parent := opts.Ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	chosen := bitlattice.NewMask(len(bl.Sites))
	bound := bitlattice.NewMask(bl.N)

	if bound.Equal(bl.Full) {
		return Result{}, nil
	}
	p, ok := lowestUnset(bound, bl.N)
	if !ok {
		return Result{}, nil
	}

	var firstChoices []int
	for s := 0; s < len(bl.Sites); s++ {
		if bl.Admissible != nil && !bl.Admissible.Test(uint(s)) {
			continue
		}
		if bl.Attach[s].Test(p) {
			firstChoices = append(firstChoices, s)
		}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		merged    Result
		sem       = make(chan struct{}, workers)
		forbidden = indexByTopBit(opts.ForbiddenMasks)
	)

	for _, s := range firstChoices {
		s := s
		if bl.Attach[s].Intersects(bound) {
			continue
		}
		isSingle := bl.IsSingle(s)
		if isSingle && bl.MaxSinglets == 0 {
			continue
		}

		nextChosen := chosen.Clone()
		nextChosen.Set(uint(s))
		if completesForbiddenStatic(forbidden, nextChosen, s) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			singles := 0
			if isSingle {
				singles = 1
			}

			e := &searchEngine{
				bl:             bl,
				ctx:            ctx,
				findAll:        opts.FindAll,
				maxSinglets:    bl.MaxSinglets,
				maxDepth:       opts.MaxDepth,
				forbiddenByTop: forbidden,
			}
			e.dfs(bound.Union(bl.Attach[s]), nextChosen, singles, s+1, 1)

			mu.Lock()
			defer mu.Unlock()
			merged.Solutions = append(merged.Solutions, e.solutions...)
			if e.cancelled {
				merged.Cancelled = true
			}
			if e.stop && !opts.FindAll {
				cancel() // a first solution was found; stop sibling workers.
			}
		}()
	}

	wg.Wait()

	if !opts.FindAll && len(merged.Solutions) > 0 {
		merged.Solutions = merged.Solutions[:1]
		// Siblings cancelled by our own early stop are a normal
		// termination, not a caller cancellation.
		select {
		case <-parent.Done():
		default:
			merged.Cancelled = false
		}
	}
	return merged, nil
}

// completesForbiddenStatic mirrors searchEngine.completesForbidden for use
// before any engine exists (the first-branch fan-out setup).
func completesForbiddenStatic(byTop map[int][]bitlattice.Mask, chosen bitlattice.Mask, s int) bool {
	for _, f := range byTop[s] {
		if chosen.Contains(f) {
			return true
		}
	}
	return false
}
