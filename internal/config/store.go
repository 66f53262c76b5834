package config

// Store owns the live settings. Edits are queued with Update and applied
// by Commit, which the frame loop calls once before either module runs, so
// every module observes the same values for a whole frame.
type Store struct {
	current Settings
	pending []func(*Settings)
	version uint64
}

// NewStore returns a store seeded with s.
func NewStore(s Settings) *Store {
	return &Store{current: s.Clone()}
}

// Update queues an edit. It takes effect at the next Commit.
func (st *Store) Update(fn func(*Settings)) {
	st.pending = append(st.pending, fn)
}

// Commit applies queued edits in order and returns the frame snapshot.
func (st *Store) Commit() Settings {
	if len(st.pending) > 0 {
		for _, fn := range st.pending {
			fn(&st.current)
		}
		st.pending = st.pending[:0]
		st.version++
	}
	return st.current.Clone()
}

// Snapshot returns the committed settings without applying queued edits.
func (st *Store) Snapshot() Settings {
	return st.current.Clone()
}

// Version increments on every Commit that applied at least one edit.
func (st *Store) Version() uint64 {
	return st.version
}

// Pending reports whether edits are waiting for the next Commit.
func (st *Store) Pending() bool {
	return len(st.pending) > 0
}
