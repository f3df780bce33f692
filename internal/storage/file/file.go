package file

import (
	"fmt"
	"io"
	"os"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

/**
* This module exposes a file on disk as a sequence of fixed-size pages.
* The file is a flat byte stream whose length is always a multiple of
* util.PageSize; page i occupies bytes [i*PageSize, (i+1)*PageSize).
**/
type PageFile struct {
	file       *os.File
	name       string
	totalPages int // derived from byte length / PageSize at open, bumped by append
	curPagePos int // advisory cursor used by the sequential helpers
}

// Create creates (or truncates) a page file holding exactly one zero page.
func Create(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %q: %v: %w", name, err, util.ErrWriteFailed)
	}

	var zero page.Page
	if _, err := f.Write(zero[:]); err != nil {
		f.Close()
		return fmt.Errorf("create %q: write zero page: %v: %w", name, err, util.ErrWriteFailed)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("create %q: sync: %v: %w", name, err, util.ErrWriteFailed)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create %q: close: %v: %w", name, err, util.ErrWriteFailed)
	}
	return nil
}

// Open opens an existing page file read+write. The page count is derived
// from the file length; the cursor starts at page 0.
func Open(name string) (*PageFile, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, util.ErrFileNotFound)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %q: stat: %v: %w", name, err, util.ErrFileNotFound)
	}

	return &PageFile{
		file:       f,
		name:       name,
		totalPages: int(info.Size() / util.PageSize),
		curPagePos: 0,
	}, nil
}

// Close releases the OS file handle. Further operations on the handle
// fail with ErrFileHandleNotInit.
func (pf *PageFile) Close() error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	err := pf.file.Close()
	pf.file = nil
	pf.totalPages = 0
	pf.curPagePos = 0
	if err != nil {
		return fmt.Errorf("close %q: %v: %w", pf.name, err, util.ErrWriteFailed)
	}
	return nil
}

// Destroy removes a page file that is not open anywhere. Callers holding an
// open handle use (*PageFile).Destroy instead.
func Destroy(name string) error {
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("destroy %q: %w", name, util.ErrFileNotFound)
	}
	return nil
}

// Destroy closes the open handle, then removes the file from disk. Some
// platforms refuse to unlink a file that still has an open descriptor.
func (pf *PageFile) Destroy() error {
	if pf == nil {
		return util.ErrFileHandleNotInit
	}
	if pf.file != nil {
		if err := pf.Close(); err != nil {
			return err
		}
	}
	return Destroy(pf.name)
}

func (pf *PageFile) Name() string {
	return pf.name
}

func (pf *PageFile) TotalPages() int {
	return pf.totalPages
}

// PagePos returns the cursor used by the sequential read/write helpers.
func (pf *PageFile) PagePos() int {
	return pf.curPagePos
}

/* READ FILE */
func (pf *PageFile) ReadPage(pageNum int, p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	if pageNum < 0 || pageNum >= pf.totalPages {
		return fmt.Errorf("read page %d of %d: %w", pageNum, pf.totalPages, util.ErrReadNonExistingPage)
	}

	if err := pf.seekToPage(pageNum); err != nil {
		return err
	}
	if _, err := io.ReadFull(pf.file, p[:]); err != nil {
		// A short read means the file shrank under us or the disk failed.
		return fmt.Errorf("read page %d: %v: %w", pageNum, err, util.ErrReadNonExistingPage)
	}

	pf.curPagePos = pageNum
	return nil
}

/* WRITE FILE */
// WritePage stores p as page pageNum, growing the file first when pageNum
// lies beyond the current end. The write is flushed to the OS before return.
func (pf *PageFile) WritePage(pageNum int, p *page.Page) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	if pageNum < 0 {
		return fmt.Errorf("write page %d: %w", pageNum, util.ErrWriteFailed)
	}

	if pageNum >= pf.totalPages {
		if err := pf.EnsureCapacity(pageNum + 1); err != nil {
			return err
		}
	}

	if err := pf.seekToPage(pageNum); err != nil {
		return fmt.Errorf("write page %d: %v: %w", pageNum, err, util.ErrWriteFailed)
	}
	n, err := pf.file.Write(p[:])
	if err != nil || n < util.PageSize {
		return fmt.Errorf("write page %d: short write (%d bytes): %w", pageNum, n, util.ErrWriteFailed)
	}
	if err := pf.file.Sync(); err != nil {
		return fmt.Errorf("write page %d: sync: %v: %w", pageNum, err, util.ErrWriteFailed)
	}

	pf.curPagePos = pageNum
	return nil
}

// AppendEmptyPage grows the file by one zero-filled page and moves the
// cursor onto it.
func (pf *PageFile) AppendEmptyPage() error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}

	offset := int64(pf.totalPages) * int64(util.PageSize)
	if _, err := pf.file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("append page: seek: %v: %w", err, util.ErrWriteFailed)
	}

	var zero page.Page
	n, err := pf.file.Write(zero[:])
	if err != nil || n < util.PageSize {
		return fmt.Errorf("append page: short write (%d bytes): %w", n, util.ErrWriteFailed)
	}
	if err := pf.file.Sync(); err != nil {
		return fmt.Errorf("append page: sync: %v: %w", err, util.ErrWriteFailed)
	}

	pf.totalPages++
	pf.curPagePos = pf.totalPages - 1
	return nil
}

// EnsureCapacity appends zero pages until the file holds at least n pages.
func (pf *PageFile) EnsureCapacity(n int) error {
	if pf == nil || pf.file == nil {
		return util.ErrFileHandleNotInit
	}
	if n < 0 {
		return fmt.Errorf("ensure capacity %d: %w", n, util.ErrWriteFailed)
	}
	for pf.totalPages < n {
		if err := pf.AppendEmptyPage(); err != nil {
			return err
		}
	}
	return nil
}

func (pf *PageFile) seekToPage(pageNum int) error {
	offset := int64(pageNum) * int64(util.PageSize)
	if _, err := pf.file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek to page %d: %v: %w", pageNum, err, util.ErrReadNonExistingPage)
	}
	return nil
}
