package traversal

import (
	"github.com/go-md/autopas/cell"
	"github.com/go-md/autopas/config"
	"github.com/go-md/autopas/functor"
	"github.com/go-md/autopas/workers"
)

// Cluster is one fixed-size group of particles in a VerletClusterLists
// tower, with the neighbor list built at the last rebuild.
type Cluster struct {
	Cell      *cell.Cell
	Neighbors []*Cluster
}

// Tower is a vertical column of Clusters sharing an (X, Y) tower index.
type Tower struct {
	X, Y     int
	Clusters []*Cluster
}

// ClusterGrid is the VerletClusterLists addressing surface: a flat list of
// towers, each holding its clusters ordered by z.
type ClusterGrid interface {
	Towers() []*Tower
}

// towerColor9 groups towers by (X mod 3, Y mod 3). The neighbor relation
// only ever links a tower to one of its 8 immediate (X,Y) neighbors, an
// offset of -1, 0, or 1 along each axis. Two towers of the same color have
// X (and Y) differing by a nonzero multiple of 3, so no combination of
// their own +-1 neighbor offsets can land them both in a shared target
// tower: that would require their X (or Y) difference to equal the
// difference of two offsets in {-1,0,1}, which only ever spans -2..2, and
// the only multiple of 3 in that range is 0. Parity (4-coloring) is not
// enough: towers 2 apart in X share the same parity and both reach a
// common neighbor one step further in.
func towerColor9(t *Tower) int { return (t.X%3)*3 + t.Y%3 }

// ClusterColoring is the VCL-specific traversal: it colors towers (not
// individual clusters) so that concurrent towers never share a neighbor
// list entry under Newton-3, then processes every cluster within a tower
// sequentially (clusters in the same tower are never run concurrently,
// which also resolves same-tower z-neighbor writes without a finer
// coloring).
type ClusterColoring struct{}

func (ClusterColoring) Kind() config.TraversalKind { return config.ClusterColoring }
func (ClusterColoring) SupportsNewton3() bool       { return true }
func (ClusterColoring) SupportsNonNewton3() bool    { return true }
func (ClusterColoring) CompatibleContainers() []config.ContainerKind {
	return []config.ContainerKind{config.VerletClusterLists}
}

// ApplicableClusters is ClusterColoring's Applicable check: it has no slab
// requirement, so any non-empty tower set is fine.
func (ClusterColoring) ApplicableClusters(numTowers int) bool { return numTowers > 0 }

func touchedClusterCells(towers []*Tower) []*cell.Cell {
	var out []*cell.Cell
	for _, t := range towers {
		for _, c := range t.Clusters {
			out = append(out, c.Cell)
			for _, nb := range c.Neighbors {
				out = append(out, nb.Cell)
			}
		}
	}
	return out
}

// ExecuteClusters runs the traversal over a ClusterGrid. It is a separate
// method (rather than satisfying the Traversal interface, which is phrased
// in terms of the cell-grid Grid) because VerletClusterLists' neighbor
// structure isn't addressable as a 3D cell grid.
func (ClusterColoring) ExecuteClusters(d *functor.Dispatcher, g ClusterGrid, layout config.Layout, newton3 bool) {
	towers := g.Towers()

	if layout == config.SoA {
		cells := touchedClusterCells(towers)
		functor.LoadAll(cells)
		defer functor.ExtractAll(cells)
	}

	var groups [9][]func()
	for _, t := range towers {
		t := t
		c := towerColor9(t)
		groups[c] = append(groups[c], func() {
			for _, cl := range t.Clusters {
				dispatchPair(d, cl.Cell, cl.Cell, layout, newton3)
				for _, nb := range cl.Neighbors {
					if newton3 {
						dispatchPair(d, cl.Cell, nb.Cell, layout, true)
					} else if layout == config.SoA {
						d.CellSoAOneWay(cl.Cell, nb.Cell)
					} else {
						d.CellAoSOneWay(cl.Cell, nb.Cell)
					}
				}
			}
		})
	}
	workers.RunGroups(groups[:])
}
