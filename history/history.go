package history

import (
	"log"
	"os"
	"sync"
)

// DefaultCapacity matches the retention of the screenshot temp directory.
const DefaultCapacity = 20

// Record is one retained screenshot file, newest first.
type Record struct {
	Path string
}

// Ring is the bounded, most-recent-first list of processed screenshot files.
// Insertion goes to the front; overflow evicts from the back and deletes the
// evicted record's backing file. A view cursor tracks which entry the
// "show previous/next capture" keys are looking at.
type Ring struct {
	mu       sync.Mutex
	capacity int
	records  []Record
	cursor   int
}

func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// InsertFront records a newly persisted screenshot and resets the view
// cursor to the newest entry. When the ring is over capacity the oldest
// record is dropped and its file deleted; deletion failure is logged, not
// fatal.
func (r *Ring) InsertFront(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]Record{{Path: path}}, r.records...)
	if len(r.records) > r.capacity {
		old := r.records[len(r.records)-1]
		r.records = r.records[:len(r.records)-1]
		if err := os.Remove(old.Path); err != nil {
			log.Printf("History: failed to delete evicted screenshot %s: %v", old.Path, err)
		}
	}
	r.cursor = 0
}

// Len returns the number of retained records.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Latest returns the newest record, if any.
func (r *Ring) Latest() (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return Record{}, false
	}
	return r.records[0], true
}

// Current returns the record under the view cursor, if any.
func (r *Ring) Current() (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return Record{}, false
	}
	return r.records[r.cursor], true
}

// Navigate moves the view cursor by delta (positive = older), clamped to
// [0, len-1], and returns the record now under the cursor.
func (r *Ring) Navigate(delta int) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return Record{}, false
	}
	r.cursor += delta
	if r.cursor < 0 {
		r.cursor = 0
	}
	if r.cursor > len(r.records)-1 {
		r.cursor = len(r.records) - 1
	}
	return r.records[r.cursor], true
}

// ResetCursor points the view cursor back at the newest entry.
func (r *Ring) ResetCursor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = 0
}

// Paths returns a copy of the retained file paths, newest first.
func (r *Ring) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Path
	}
	return out
}
