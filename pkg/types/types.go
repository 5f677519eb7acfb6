package types

// RootPID is the init process every application hangs off.
const RootPID PID = "1"

// PID identifies a process within one sample set. It is kept as the raw
// string the sampler printed.
type PID string

// Mode selects which metric the report ranks by.
type Mode string

const (
	ModeMemory Mode = "memory"
	ModeCPU    Mode = "cpu"
)

// ParseMode maps a positional argument to a Mode. Anything other than "cpu"
// selects memory.
func ParseMode(arg string) Mode {
	if arg == string(ModeCPU) {
		return ModeCPU
	}
	return ModeMemory
}

// ProcessRecord holds the last sampled metrics for a PID and its children.
type ProcessRecord struct {
	PID        PID
	ParentPID  PID
	MemoryKiB  uint64
	CPUPercent float64
	Children   *PIDSet
}

// NewProcessRecord returns a record with zero metrics and no children.
func NewProcessRecord(pid PID) *ProcessRecord {
	return &ProcessRecord{PID: pid, Children: NewPIDSet()}
}

// Tree maps every observed PID to its record.
type Tree map[PID]*ProcessRecord

// Ensure returns the record for pid, creating it when absent.
func (t Tree) Ensure(pid PID) *ProcessRecord {
	if rec, ok := t[pid]; ok {
		return rec
	}
	rec := NewProcessRecord(pid)
	t[pid] = rec
	return rec
}

// NameEntry pairs a PID with its full command line and resolved short name.
type NameEntry struct {
	PID       PID
	LongName  string
	ShortName string
}

// Names maps PIDs to their listing entry.
type Names map[PID]NameEntry

// Application is the aggregate for one resolved short name.
type Application struct {
	Name       string
	MemoryKiB  uint64
	CPUPercent float64
	PIDs       *PIDSet
}

// Metric returns the value the given mode ranks by.
func (a Application) Metric(mode Mode) float64 {
	if mode == ModeCPU {
		return a.CPUPercent
	}
	return float64(a.MemoryKiB)
}

// Applications maps a short name to its aggregate.
type Applications map[string]*Application
