/*Package workers sizes and runs the goroutine worker pool each traversal
fans out onto. It replaces the hard os.Exit-on-overcommit behavior of
phil-mansfield/guppy's lib/thread.go SetThreads with an error return, since
this is a library core rather than a CLI tool.*/
package workers

import (
	"runtime"
	"sync"

	"github.com/go-md/autopas/apaerr"
)

// Count returns the number of goroutines a traversal should fan out onto,
// defaulting to GOMAXPROCS.
func Count() int { return runtime.GOMAXPROCS(0) }

// SetThreads sets GOMAXPROCS to n. It rejects n greater than the number of
// available cores, returning an error instead of terminating the process.
func SetThreads(n int) error {
	if n < 1 {
		return apaerr.New(apaerr.DimensionTooSmall, "workers.SetThreads",
			"%d is not a valid thread count", n)
	}
	if n > runtime.NumCPU() {
		return apaerr.New(apaerr.DimensionTooSmall, "workers.SetThreads",
			"%d threads requested but only %d cores are available", n, runtime.NumCPU())
	}
	runtime.GOMAXPROCS(n)
	return nil
}

// RunGroup runs every task in tasks concurrently and blocks until all have
// returned. Use it for one color/slab of a coloring or sliced traversal:
// every base cell within a color is write-disjoint from every other base
// cell in that color, so they can run concurrently, but the caller must
// join before starting the next color.
func RunGroup(tasks []func()) {
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		task := task
		go func() {
			defer wg.Done()
			task()
		}()
	}
	wg.Wait()
}

// RunGroups runs each group in order via RunGroup, joining fully between
// groups. This is the shape a coloring traversal uses: colors are processed
// sequentially, cells within a color are processed concurrently.
func RunGroups(groups [][]func()) {
	for _, g := range groups {
		RunGroup(g)
	}
}

// Partition splits n items as evenly as possible across numWorkers
// contiguous ranges, used by sliced traversals to assign a slab's cell
// range to a worker. It always returns exactly numWorkers ranges, some of
// which are empty if n < numWorkers.
func Partition(n, numWorkers int) [][2]int {
	ranges := make([][2]int, numWorkers)
	base := n / numWorkers
	rem := n % numWorkers
	start := 0
	for i := 0; i < numWorkers; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges[i] = [2]int{start, start + size}
		start += size
	}
	return ranges
}
