package tree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/srodi/hog/pkg/types"
)

// HeaderToken starts the column header row of every sample block.
const HeaderToken = "PPID"

const (
	columnsWithoutCPU = 3
	columnsWithCPU    = 4
)

type scanState int

const (
	seekingHeader scanState = iota
	collecting
)

// blockScanner skips preamble and all but the last sample block. It is a
// two-state machine: seekingHeader counts down the remaining headers, and
// collecting hands rows out with the column count taken from the last header.
type blockScanner struct {
	state     scanState
	remaining int
	columns   int
}

func newBlockScanner(samples int) *blockScanner {
	if samples < 1 {
		samples = 1
	}
	return &blockScanner{state: seekingHeader, remaining: samples}
}

// next consumes one line and returns its fields when it is a data row.
func (s *blockScanner) next(line string) ([]string, error) {
	switch s.state {
	case seekingHeader:
		if !strings.HasPrefix(strings.TrimLeft(line, " \t"), HeaderToken) {
			return nil, nil
		}
		s.remaining--
		if s.remaining > 0 {
			return nil, nil
		}
		s.columns = len(strings.Fields(line))
		if s.columns != columnsWithoutCPU && s.columns != columnsWithCPU {
			return nil, &types.ParseError{Input: line, Reason: "process table header"}
		}
		s.state = collecting
		return nil, nil
	default:
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, nil
		}
		if len(fields) != s.columns {
			return nil, &types.ParseError{Input: line, Reason: fmt.Sprintf("process table row (want %d columns)", s.columns)}
		}
		return fields, nil
	}
}

// Build parses top-style output with columns PPID PID MEM [CPU]. With
// samples > 1 only the rows after the last header block are used.
func Build(r io.Reader, samples int) (types.Tree, error) {
	tree := make(types.Tree)
	blocks := newBlockScanner(samples)
	want := blocks.remaining

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields, err := blocks.next(scanner.Text())
		if err != nil {
			return nil, err
		}
		if fields == nil {
			continue
		}
		if err := addRow(tree, fields); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading process table: %w", err)
	}
	if blocks.state != collecting {
		return nil, &types.ParseError{
			Input:  fmt.Sprintf("%d of %d header blocks", want-blocks.remaining, want),
			Reason: "process table",
		}
	}
	return tree, nil
}

func addRow(tree types.Tree, fields []string) error {
	ppid, pid := types.PID(fields[0]), types.PID(fields[1])
	memory, err := ParseMemory(fields[2])
	if err != nil {
		return err
	}
	var cpu float64
	if len(fields) == columnsWithCPU {
		if cpu, err = strconv.ParseFloat(fields[3], 64); err != nil {
			return &types.ParseError{Input: fields[3], Reason: "cpu"}
		}
	}

	parent := tree.Ensure(ppid)
	child := tree.Ensure(pid)
	if child.ParentPID != "" && child.ParentPID != ppid {
		if previous, ok := tree[child.ParentPID]; ok {
			previous.Children.Remove(pid)
		}
	}
	child.ParentPID = ppid
	parent.Children.Add(pid)

	// Later samples overwrite earlier ones.
	child.MemoryKiB = memory
	child.CPUPercent = cpu
	return nil
}
