package page

import (
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// Page is the block that is read from / written to disk. Pages carry no
// header or magic; byte i of a page lives at byte pageNum*PageSize+i of the file.
type Page [util.PageSize]byte

// Zero clears the page contents.
func (p *Page) Zero() {
	*p = Page{}
}
