// Package sched implements a virtual-clock timer schedule advanced by the
// game's frame update. Entries are (next fire time, period, callback); nothing
// runs on a real clock, so ordering is deterministic and tests need no sleeps.
package sched

// ID identifies a scheduled entry.
type ID uint64

type entry struct {
	id     ID
	at     float64 // next fire time, ms
	period float64 // 0 for one-shot entries
	seq    uint64  // insertion order, breaks ties
	fn     func()
	dead   bool
}

// Scheduler holds timer entries against a virtual clock measured in milliseconds.
// It is not safe for concurrent use; the owning game loop drives it.
type Scheduler struct {
	now     float64
	entries []*entry
	nextID  ID
	seq     uint64
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time. While a callback runs this is the
// entry's logical fire time, not the end of the frame.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Every schedules fn to run every periodMs, first firing one period from now.
// Non-positive periods are rejected and return 0.
func (s *Scheduler) Every(periodMs float64, fn func()) ID {
	if periodMs <= 0 {
		return 0
	}
	return s.add(periodMs, periodMs, fn)
}

// After schedules fn to run once, delayMs from now.
func (s *Scheduler) After(delayMs float64, fn func()) ID {
	if delayMs < 0 {
		delayMs = 0
	}
	return s.add(delayMs, 0, fn)
}

func (s *Scheduler) add(delay, period float64, fn func()) ID {
	s.nextID++
	s.seq++
	s.entries = append(s.entries, &entry{
		id:     s.nextID,
		at:     s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
	})
	return s.nextID
}

// Cancel removes an entry. It returns false if the entry is unknown or
// already finished.
func (s *Scheduler) Cancel(id ID) bool {
	for _, e := range s.entries {
		if e.id == id && !e.dead {
			e.dead = true
			return true
		}
	}
	return false
}

// CancelAll removes every entry. Called from inside a callback it also stops
// any other entry that was due in the same Advance.
func (s *Scheduler) CancelAll() {
	for _, e := range s.entries {
		e.dead = true
	}
}

// Len returns the number of live entries.
func (s *Scheduler) Len() int {
	n := 0
	for _, e := range s.entries {
		if !e.dead {
			n++
		}
	}
	return n
}

// Reset cancels everything and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.entries = s.entries[:0]
	s.now = 0
}

// Advance moves the clock forward by deltaMs, running every entry that comes
// due in fire-time order. A repeating entry fires once per elapsed period, so
// a long frame catches up instead of dropping callbacks.
func (s *Scheduler) Advance(deltaMs float64) {
	if deltaMs < 0 {
		deltaMs = 0
	}
	target := s.now + deltaMs

	for {
		e := s.nextDue(target)
		if e == nil {
			break
		}
		s.now = e.at
		if e.period > 0 {
			e.at += e.period
		} else {
			e.dead = true
		}
		e.fn()
	}

	s.now = target
	s.compact()
}

// nextDue returns the earliest live entry firing at or before target.
func (s *Scheduler) nextDue(target float64) *entry {
	var best *entry
	for _, e := range s.entries {
		if e.dead || e.at > target {
			continue
		}
		if best == nil || e.at < best.at || (e.at == best.at && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.dead {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}

