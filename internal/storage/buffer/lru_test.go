package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

func TestLRUList(t *testing.T) {
	pinnedSet := map[int]bool{}
	l := newLRUList(4, func(idx int) bool { return pinnedSet[idx] })

	t.Run("VictimIsLeastRecent", func(t *testing.T) {
		l.admit(0)
		l.admit(1)
		l.admit(2)
		assert.Equal(t, 0, l.victim())
	})

	t.Run("TouchMovesToHead", func(t *testing.T) {
		l.touch(0)
		assert.Equal(t, 1, l.victim())
	})

	t.Run("ScanSkipsPinnedFromTail", func(t *testing.T) {
		pinnedSet[1] = true
		assert.Equal(t, 2, l.victim())
	})

	t.Run("RemoveUnlinks", func(t *testing.T) {
		l.remove(2)
		pinnedSet[1] = false
		assert.Equal(t, 1, l.victim())

		l.remove(1)
		assert.Equal(t, 0, l.victim())

		l.remove(0)
		assert.Equal(t, -1, l.victim())
	})
}

// Scenario: a hit refreshes a page's recency, changing which page the next
// miss evicts.
func TestLRUTouchOnHit(t *testing.T) {
	bp, _ := newTestPool(t, 3, 4, LRU)
	defer bp.Shutdown()

	for pid := util.PageID(0); pid < 3; pid++ {
		h, err := bp.Pin(pid)
		require.NoError(t, err)
		require.NoError(t, bp.Unpin(h))
	}

	// Touch page 0: page 1 becomes the least recently used.
	h, err := bp.Pin(0)
	require.NoError(t, err)
	require.NoError(t, bp.Unpin(h))

	h3, err := bp.Pin(3)
	require.NoError(t, err)
	require.NoError(t, bp.Unpin(h3))

	contents := bp.FrameContents()
	assert.ElementsMatch(t, []util.PageID{0, 2, 3}, contents)
	assert.NotContains(t, contents, util.PageID(1), "page 1 was least recently used")
}

func TestLRUSkipsPinnedVictim(t *testing.T) {
	bp, _ := newTestPool(t, 2, 4, LRU)
	defer bp.Shutdown()

	// Page 0 is older but pinned; page 1 takes the eviction.
	h0, err := bp.Pin(0)
	require.NoError(t, err)
	h1, err := bp.Pin(1)
	require.NoError(t, err)
	require.NoError(t, bp.Unpin(h1))

	h2, err := bp.Pin(2)
	require.NoError(t, err)
	require.NoError(t, bp.Unpin(h2))

	contents := bp.FrameContents()
	assert.Contains(t, contents, util.PageID(0))
	assert.Contains(t, contents, util.PageID(2))

	require.NoError(t, bp.Unpin(h0))
}
