package search

import (
	"net/url"
	"strconv"
)

// PageSize is used by both search pages.
const PageSize = 20

// Pager tracks the zero based result page.
type Pager struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func NewPager() Pager { return Pager{Size: PageSize} }

func (p *Pager) Next() { p.Page++ }

// Prev never goes below the first page.
func (p *Pager) Prev() {
	if p.Page > 0 {
		p.Page--
	}
}

// Reset goes back to the first page, as applying or clearing filters does.
func (p *Pager) Reset() { p.Page = 0 }

// Normalize fixes out of range values coming from user input.
func (p Pager) Normalize() Pager {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = PageSize
	}
	return p
}

func (p Pager) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(p.Size))
	return q
}
