package buffer

import (
	"fmt"
	"sync"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/file"
	"github.com/bietkhonhungvandi212/frame-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// frame is one slot of the pool. The data block is allocated once at init
// and reused for every page that passes through the slot.
type frame struct {
	pageID   util.PageID // NoPage when the slot is empty
	data     page.Page
	dirty    bool
	pinCount int
}

// Handle is a non-owning view of a resident page, valid while the page
// stays pinned in the pool that returned it.
type Handle struct {
	PageID util.PageID
	Data   *page.Page
}

// Pool caches a fixed number of pages of one page file in memory. A single
// mutex guards the whole frame table: victim selection reads global
// replacement state, so per-frame locking would not compose.
type Pool struct {
	mu        sync.Mutex
	pf        *file.PageFile
	frames    []frame
	pageToIdx map[util.PageID]int
	strategy  Strategy
	rep       replacer
	readIO    uint64
	writeIO   uint64
}

// NewPool opens fileName and fronts it with capacity empty frames.
// strategyData is reserved for LRU-K style tuning and currently ignored.
func NewPool(fileName string, capacity int, strategy Strategy, strategyData any) (*Pool, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("pool capacity %d: %w", capacity, util.ErrInvalidPoolSize)
	}

	bp := &Pool{
		frames:    make([]frame, capacity),
		pageToIdx: make(map[util.PageID]int, capacity),
		strategy:  strategy,
	}
	for i := range bp.frames {
		bp.frames[i].pageID = util.NoPage
	}

	pinned := func(frameIdx int) bool { return bp.frames[frameIdx].pinCount > 0 }
	switch strategy {
	case FIFO:
		bp.rep = newFIFOQueue(capacity, pinned)
	case LRU:
		bp.rep = newLRUList(capacity, pinned)
	default:
		return nil, fmt.Errorf("strategy %s: %w", strategy, util.ErrStrategyNotSupported)
	}

	pf, err := file.Open(fileName)
	if err != nil {
		return nil, err
	}
	bp.pf = pf
	return bp, nil
}

// Pin makes page pid resident and bumps its pin count. Pinning an already
// pinned page is not an error; residency is reference-counted.
func (bp *Pool) Pin(pid util.PageID) (*Handle, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.frames == nil {
		return nil, util.ErrFileHandleNotInit
	}
	if pid < 0 {
		return nil, fmt.Errorf("pin page %d: %w", pid, util.ErrReadNonExistingPage)
	}

	// Hit: the page is already resident.
	if idx, ok := bp.pageToIdx[pid]; ok {
		f := &bp.frames[idx]
		f.pinCount++
		bp.rep.touch(idx)
		return &Handle{PageID: pid, Data: &f.data}, nil
	}

	// Miss: lowest-index empty slot, else a victim.
	idx := bp.emptyFrame()
	if idx < 0 {
		var err error
		idx, err = bp.evict()
		if err != nil {
			return nil, fmt.Errorf("pin page %d: %w", pid, err)
		}
	}

	if int(pid) >= bp.pf.TotalPages() {
		if err := bp.pf.EnsureCapacity(int(pid) + 1); err != nil {
			return nil, err
		}
	}

	f := &bp.frames[idx]
	if err := bp.pf.ReadPage(int(pid), &f.data); err != nil {
		// The frame was emptied before the load; leave it empty.
		return nil, err
	}
	bp.readIO++

	f.pageID = pid
	f.dirty = false
	f.pinCount = 1
	bp.pageToIdx[pid] = idx
	bp.rep.admit(idx)

	return &Handle{PageID: pid, Data: &f.data}, nil
}

// Unpin releases one pin on the page behind h.
func (bp *Pool) Unpin(h *Handle) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.frames == nil {
		return util.ErrFileHandleNotInit
	}
	idx, ok := bp.pageToIdx[h.PageID]
	if !ok {
		return fmt.Errorf("unpin page %d: not resident: %w", h.PageID, util.ErrReadNonExistingPage)
	}
	f := &bp.frames[idx]
	if f.pinCount == 0 {
		return fmt.Errorf("unpin page %d: not pinned: %w", h.PageID, util.ErrReadNonExistingPage)
	}
	f.pinCount--
	return nil
}

// MarkDirty records that the caller modified the page behind h.
func (bp *Pool) MarkDirty(h *Handle) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.frames == nil {
		return util.ErrFileHandleNotInit
	}
	idx, ok := bp.pageToIdx[h.PageID]
	if !ok {
		return fmt.Errorf("mark dirty page %d: not resident: %w", h.PageID, util.ErrReadNonExistingPage)
	}
	bp.frames[idx].dirty = true
	return nil
}

// ForcePage writes the page behind h to disk immediately and clears dirty.
func (bp *Pool) ForcePage(h *Handle) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.frames == nil {
		return util.ErrFileHandleNotInit
	}
	idx, ok := bp.pageToIdx[h.PageID]
	if !ok {
		return fmt.Errorf("force page %d: not resident: %w", h.PageID, util.ErrReadNonExistingPage)
	}
	f := &bp.frames[idx]
	if err := bp.pf.WritePage(int(f.pageID), &f.data); err != nil {
		return err
	}
	bp.writeIO++
	f.dirty = false
	return nil
}

// ForceFlush writes back every dirty unpinned frame and clears its dirty bit.
func (bp *Pool) ForceFlush() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.frames == nil {
		return util.ErrFileHandleNotInit
	}
	for i := range bp.frames {
		f := &bp.frames[i]
		if f.pageID == util.NoPage || !f.dirty || f.pinCount > 0 {
			continue
		}
		if err := bp.pf.WritePage(int(f.pageID), &f.data); err != nil {
			return err
		}
		bp.writeIO++
		f.dirty = false
	}
	return nil
}

// Shutdown drains every dirty frame, closes the page file and invalidates
// the pool. Dirty frames that are still pinned are a client bug; they are
// flushed anyway rather than dropped, so no written data is lost silently.
func (bp *Pool) Shutdown() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.frames == nil {
		return util.ErrFileHandleNotInit
	}
	for i := range bp.frames {
		f := &bp.frames[i]
		if f.pageID == util.NoPage || !f.dirty {
			continue
		}
		if err := bp.pf.WritePage(int(f.pageID), &f.data); err != nil {
			return err
		}
		bp.writeIO++
		f.dirty = false
	}

	err := bp.pf.Close()
	bp.frames = nil
	bp.pageToIdx = nil
	bp.rep = nil
	return err
}

// emptyFrame returns the lowest-index empty slot, or -1.
func (bp *Pool) emptyFrame() int {
	for i := range bp.frames {
		if bp.frames[i].pageID == util.NoPage {
			return i
		}
	}
	return -1
}

// evict clears one unpinned frame, writing it back first when dirty, and
// returns its index. A failed write-back aborts the eviction and leaves the
// victim resident, dirty and tracked by the replacer.
func (bp *Pool) evict() (int, error) {
	idx := bp.rep.victim()
	if idx < 0 {
		return -1, fmt.Errorf("all frames pinned: %w", util.ErrReadNonExistingPage)
	}
	f := &bp.frames[idx]
	if f.dirty {
		if err := bp.pf.WritePage(int(f.pageID), &f.data); err != nil {
			return -1, err
		}
		bp.writeIO++
		f.dirty = false
	}
	bp.rep.remove(idx)
	delete(bp.pageToIdx, f.pageID)
	f.pageID = util.NoPage
	return idx, nil
}
