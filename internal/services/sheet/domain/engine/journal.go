package engine

import (
	"time"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/character"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
)

// Entry is one applied mutation together with the snapshot it was applied to.
type Entry struct {
	Seq        uint64
	Mutation   mutation.Mutation
	Effects    mutation.Effects
	Checkpoint *character.Snapshot
	AppliedAt  time.Time
}

// Record describes a journal entry for callers.
type Record struct {
	Seq       uint64
	Type      mutation.Type
	Effects   mutation.Effects
	AppliedAt time.Time
	Undone    bool
}

// Journal is the ordered list of applied mutations with a cursor. Entries
// before the cursor are applied; entries from the cursor on can be redone.
type Journal struct {
	entries []Entry
	cursor  int
	limit   int
	nextSeq uint64
}

// NewJournal returns an empty journal keeping at most limit entries (0 = unbounded).
func NewJournal(limit int) *Journal {
	return &Journal{limit: max(limit, 0), nextSeq: 1}
}

// Append drops the redo tail, then records entry with the next sequence number.
// The oldest entries fall off once the limit is reached.
func (j *Journal) Append(entry Entry) Entry {
	clear(j.entries[j.cursor:])
	j.entries = j.entries[:j.cursor]
	entry.Seq = j.nextSeq
	j.nextSeq++
	j.entries = append(j.entries, entry)
	if j.limit > 0 && len(j.entries) > j.limit {
		dropped := len(j.entries) - j.limit
		j.entries = append(j.entries[:0:0], j.entries[dropped:]...)
	}
	j.cursor = len(j.entries)
	return entry
}

// Undo moves the cursor back and returns the entry being undone.
func (j *Journal) Undo() (Entry, bool) {
	if j.cursor == 0 {
		return Entry{}, false
	}
	j.cursor--
	return j.entries[j.cursor], true
}

// Next returns the entry a redo would apply without moving the cursor.
func (j *Journal) Next() (Entry, bool) {
	if j.cursor >= len(j.entries) {
		return Entry{}, false
	}
	return j.entries[j.cursor], true
}

// Advance moves the cursor past the entry returned by Next.
func (j *Journal) Advance() {
	if j.cursor < len(j.entries) {
		j.cursor++
	}
}

func (j *Journal) CanUndo() bool { return j.cursor > 0 }
func (j *Journal) CanRedo() bool { return j.cursor < len(j.entries) }
func (j *Journal) Len() int      { return len(j.entries) }

// Records lists every entry, oldest first.
func (j *Journal) Records() []Record {
	records := make([]Record, len(j.entries))
	for i, entry := range j.entries {
		records[i] = Record{
			Seq:       entry.Seq,
			Type:      entry.Mutation.Type(),
			Effects:   entry.Effects,
			AppliedAt: entry.AppliedAt,
			Undone:    i >= j.cursor,
		}
	}
	return records
}

// Reset forgets every entry. Sequence numbers keep increasing.
func (j *Journal) Reset() {
	clear(j.entries)
	j.entries = j.entries[:0]
	j.cursor = 0
}
