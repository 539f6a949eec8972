package reservation

// Entry wraps a Preference with a session-local identity used to key
// editing operations. The id never leaves the process and never appears on
// the wire.
type Entry struct {
	ID   int64
	Pref Preference
}

// Editor maintains an ordered, identity-stable list of preference entries
// while a draft is being composed. Identities are allocated from an
// explicit per-editor counter: strictly increasing, never reused for the
// editor's lifetime, so two structurally identical preferences are never
// confused.
//
// Editor is not safe for concurrent use; drafts are edited from a single
// goroutine.
type Editor struct {
	nextID  int64
	entries []Entry
}

// NewEditor returns an editor seeded with one default preference, matching
// the initial state of a fresh draft form.
func NewEditor() *Editor {
	e := &Editor{}
	e.Append(e.Allocate())
	return e
}

// Allocate mints a new entry with a fresh identity and the default
// preference payload. The entry is not yet part of the list.
func (e *Editor) Allocate() Entry {
	id := e.nextID
	e.nextID++
	return Entry{ID: id, Pref: DefaultPreference()}
}

// Append adds entry at the end of the list.
func (e *Editor) Append(entry Entry) {
	e.entries = append(e.entries, entry)
}

// RemoveByID removes the entry with the given id. Missing ids are a silent
// no-op. The editor itself allows emptying the list; keeping at least one
// preference is the editing surface's policy, not this primitive's.
func (e *Editor) RemoveByID(id int64) {
	for i, entry := range e.entries {
		if entry.ID == id {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return
		}
	}
}

// UpdateByID replaces the preference payload of the entry with the given
// id, keeping its identity and position. Missing ids are a no-op.
func (e *Editor) UpdateByID(id int64, pref Preference) {
	for i, entry := range e.entries {
		if entry.ID == id {
			e.entries[i].Pref = pref
			return
		}
	}
}

// Len returns the number of entries.
func (e *Editor) Len() int {
	return len(e.entries)
}

// Entries returns a copy of the current entry list in order.
func (e *Editor) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Preferences snapshots the ordered preference payloads for submission,
// stripping the local identities.
func (e *Editor) Preferences() []Preference {
	out := make([]Preference, 0, len(e.entries))
	for _, entry := range e.entries {
		out = append(out, entry.Pref)
	}
	return out
}

// Seed replaces the editor's content with the given preferences, giving
// every one a freshly allocated identity. Used when rehydrating a draft
// from an existing record; old identities are never reused.
func (e *Editor) Seed(prefs []Preference) {
	e.entries = e.entries[:0]
	for _, p := range prefs {
		entry := e.Allocate()
		entry.Pref = p
		e.Append(entry)
	}
}
