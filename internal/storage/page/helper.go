package page

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

func CreateTestPage(pageID util.PageID, data []byte) *Page {
	p := &Page{}
	if len(data) > len(p) {
		data = data[:len(p)] // Truncate to fit
	}
	copy(p[:], data)
	return p
}

// FillTest stamps a recognizable per-page pattern for round-trip checks.
func FillTest(pageID util.PageID) *Page {
	return CreateTestPage(pageID, fmt.Appendf(nil, "page-%d", pageID))
}
