package aggregate

import (
	"github.com/srodi/hog/pkg/types"
)

// Totals is the summed usage of a process subtree.
type Totals struct {
	MemoryKiB  uint64
	CPUPercent float64
}

// Subtree sums memory and CPU over pid and all its descendants. PIDs without
// a record count as zero. Reaching a PID twice returns a *types.CycleError.
func Subtree(tree types.Tree, pid types.PID) (Totals, error) {
	var totals Totals
	visited := make(map[types.PID]struct{})
	stack := []types.PID{pid}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[current]; seen {
			return Totals{}, &types.CycleError{PID: current}
		}
		visited[current] = struct{}{}

		record, ok := tree[current]
		if !ok {
			continue
		}
		totals.MemoryKiB += record.MemoryKiB
		totals.CPUPercent += record.CPUPercent
		stack = append(stack, record.Children.Slice()...)
	}
	return totals, nil
}

// Applications groups the direct children of root by resolved short name and
// adds each child's subtree totals to its application. Children without a
// name entry are skipped.
func Applications(tree types.Tree, names types.Names, root types.PID) (types.Applications, error) {
	apps := make(types.Applications)
	rootRecord, ok := tree[root]
	if !ok {
		return apps, nil
	}
	for _, pid := range rootRecord.Children.Slice() {
		entry, ok := names[pid]
		if !ok {
			continue
		}
		totals, err := Subtree(tree, pid)
		if err != nil {
			return nil, err
		}
		app, ok := apps[entry.ShortName]
		if !ok {
			app = &types.Application{Name: entry.ShortName, PIDs: types.NewPIDSet()}
			apps[entry.ShortName] = app
		}
		app.MemoryKiB += totals.MemoryKiB
		app.CPUPercent += totals.CPUPercent
		app.PIDs.Add(pid)
	}
	return apps, nil
}
