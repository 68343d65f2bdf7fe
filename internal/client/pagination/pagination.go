// Package pagination tracks page/limit for the message log screen.
package pagination

import (
	"errors"
	"slices"
)

// Limits are the page sizes an operator may pick.
var Limits = []int{4, 8, 12, 20}

const DefaultLimit = 4

var ErrUnsupportedLimit = errors.New("unsupported page size")

// Pager is a 1-based page cursor. The relay reports no total, so the last
// page is inferred from a short page.
type Pager struct {
	page     int
	limit    int
	received int
	loaded   bool
}

func New() *Pager {
	return &Pager{page: 1, limit: DefaultLimit}
}

func (p *Pager) Page() int  { return p.page }
func (p *Pager) Limit() int { return p.limit }

// SetLimit changes the page size and returns to page 1.
func (p *Pager) SetLimit(limit int) error {
	if !slices.Contains(Limits, limit) {
		return ErrUnsupportedLimit
	}
	p.limit = limit
	p.page = 1
	p.loaded = false
	return nil
}

// Loaded records how many rows the current page returned.
func (p *Pager) Loaded(rows int) {
	p.received = rows
	p.loaded = true
}

func (p *Pager) HasPrev() bool {
	return p.page > 1
}

// HasNext is false until a full page has been loaded.
func (p *Pager) HasNext() bool {
	return p.loaded && p.received >= p.limit
}

// Next advances one page when allowed.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.page++
	p.loaded = false
	return true
}

func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.page--
	p.loaded = false
	return true
}
