package file

import (
	"fmt"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// Sequential helpers over the advisory cursor. Each successful read or write
// leaves the cursor on the page it touched.

func (pf *PageFile) ReadFirstPage(p *page.Page) error {
	return pf.ReadPage(0, p)
}

func (pf *PageFile) ReadPrevPage(p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	prev := pf.curPagePos - 1
	if prev < 0 {
		return fmt.Errorf("read prev: already at first page: %w", util.ErrReadNonExistingPage)
	}
	return pf.ReadPage(prev, p)
}

func (pf *PageFile) ReadCurPage(p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	return pf.ReadPage(pf.curPagePos, p)
}

func (pf *PageFile) ReadNextPage(p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	next := pf.curPagePos + 1
	if next >= pf.totalPages {
		return fmt.Errorf("read next: already at last page: %w", util.ErrReadNonExistingPage)
	}
	return pf.ReadPage(next, p)
}

func (pf *PageFile) ReadLastPage(p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	return pf.ReadPage(pf.totalPages-1, p)
}

func (pf *PageFile) WriteCurPage(p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	return pf.WritePage(pf.curPagePos, p)
}
