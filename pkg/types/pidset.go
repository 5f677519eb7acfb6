package types

// PIDSet is a set of PIDs that remembers insertion order.
type PIDSet struct {
	order []PID
	index map[PID]int
}

// NewPIDSet returns a set holding pids in the given order, duplicates dropped.
func NewPIDSet(pids ...PID) *PIDSet {
	s := &PIDSet{index: make(map[PID]int, len(pids))}
	for _, pid := range pids {
		s.Add(pid)
	}
	return s
}

// Add inserts pid and reports whether it was new.
func (s *PIDSet) Add(pid PID) bool {
	if _, ok := s.index[pid]; ok {
		return false
	}
	s.index[pid] = len(s.order)
	s.order = append(s.order, pid)
	return true
}

// Remove deletes pid, keeping the order of the remaining members.
func (s *PIDSet) Remove(pid PID) bool {
	i, ok := s.index[pid]
	if !ok {
		return false
	}
	delete(s.index, pid)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
	return true
}

// Has reports whether pid is a member.
func (s *PIDSet) Has(pid PID) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[pid]
	return ok
}

// Len returns the number of members.
func (s *PIDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Slice returns a copy of the members in insertion order.
func (s *PIDSet) Slice() []PID {
	if s == nil {
		return nil
	}
	out := make([]PID, len(s.order))
	copy(out, s.order)
	return out
}

// Strings is Slice converted for display.
func (s *PIDSet) Strings() []string {
	pids := s.Slice()
	out := make([]string, len(pids))
	for i, pid := range pids {
		out[i] = string(pid)
	}
	return out
}
