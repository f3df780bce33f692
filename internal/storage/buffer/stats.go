package buffer

import (
	"github.com/vmihailenco/msgpack/v5"

	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// Introspection accessors. Each returns a copy taken under the pool lock;
// slot i of every slice describes frame i.

// FrameContents reports the page id held by each frame, NoPage for empty slots.
func (bp *Pool) FrameContents() []util.PageID {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	contents := make([]util.PageID, len(bp.frames))
	for i := range bp.frames {
		contents[i] = bp.frames[i].pageID
	}
	return contents
}

func (bp *Pool) DirtyFlags() []bool {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	flags := make([]bool, len(bp.frames))
	for i := range bp.frames {
		flags[i] = bp.frames[i].dirty
	}
	return flags
}

func (bp *Pool) FixCounts() []int {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	counts := make([]int, len(bp.frames))
	for i := range bp.frames {
		counts[i] = bp.frames[i].pinCount
	}
	return counts
}

// NumReadIO reports successful page loads from disk since init.
func (bp *Pool) NumReadIO() uint64 {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.readIO
}

// NumWriteIO reports successful page writes to disk since init.
func (bp *Pool) NumWriteIO() uint64 {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.writeIO
}

// Snapshot is a point-in-time copy of the frame table, serializable for
// trace dumps from the inspector.
type Snapshot struct {
	File          string        `msgpack:"file"`
	Strategy      string        `msgpack:"strategy"`
	FrameContents []util.PageID `msgpack:"frame_contents"`
	DirtyFlags    []bool        `msgpack:"dirty_flags"`
	FixCounts     []int         `msgpack:"fix_counts"`
	ReadIO        uint64        `msgpack:"read_io"`
	WriteIO       uint64        `msgpack:"write_io"`
}

// Snapshot captures the frame table atomically under the pool lock.
func (bp *Pool) Snapshot() Snapshot {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	s := Snapshot{
		File:          bp.pf.Name(),
		Strategy:      bp.strategy.String(),
		FrameContents: make([]util.PageID, len(bp.frames)),
		DirtyFlags:    make([]bool, len(bp.frames)),
		FixCounts:     make([]int, len(bp.frames)),
		ReadIO:        bp.readIO,
		WriteIO:       bp.writeIO,
	}
	for i := range bp.frames {
		s.FrameContents[i] = bp.frames[i].pageID
		s.DirtyFlags[i] = bp.frames[i].dirty
		s.FixCounts[i] = bp.frames[i].pinCount
	}
	return s
}

func (s Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(s)
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(b, &s)
	return s, err
}
