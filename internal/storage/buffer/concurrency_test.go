package buffer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// The pool is shareable across goroutines: one mutex serializes every
// operation on the frame table. A pin/dirty/unpin storm from several
// goroutines must leave all invariants intact.
func TestConcurrentPinUnpin(t *testing.T) {
	const (
		workers    = 8
		iterations = 200
		numPages   = 32
	)

	bp, path := newTestPool(t, workers, numPages, LRU)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				pid := util.PageID((w*37 + i) % numPages)
				h, err := bp.Pin(pid)
				if err != nil {
					return err
				}
				if i%3 == 0 {
					h.Data[0] = byte(pid)
					if err := bp.MarkDirty(h); err != nil {
						return err
					}
				}
				if err := bp.Unpin(h); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// No pins outstanding, every resident page id unique.
	seen := map[util.PageID]bool{}
	for _, pid := range bp.FrameContents() {
		if pid == util.NoPage {
			continue
		}
		assert.False(t, seen[pid], "page %d resident twice", pid)
		seen[pid] = true
	}
	for _, count := range bp.FixCounts() {
		assert.Zero(t, count)
	}

	require.NoError(t, bp.ForceFlush())
	for _, dirty := range bp.DirtyFlags() {
		assert.False(t, dirty)
	}

	require.NoError(t, bp.Shutdown())

	// The file never holds a partial page.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size()%util.PageSize)
}
