// Package paginator splits an ordered listing into fixed-size pages.
package paginator

import "strconv"

type Paginator struct {
	Count   int
	PerPage int
}

func New(count int, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator{
		Count:   count,
		PerPage: perPage,
	}
}

// NumPages is never less than 1: an empty listing still has one empty page.
func (p *Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// Number resolves the raw ?page= value. Anything missing, malformed or
// outside 1..NumPages falls back to the first page.
func (p *Paginator) Number(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > p.NumPages() {
		return 1
	}
	return n
}

func (p *Paginator) Offset(number int) int {
	return (number - 1) * p.PerPage
}

type Page[T any] struct {
	Items    []T `json:"items"`
	Number   int `json:"number"`
	NumPages int `json:"num_pages"`
	Count    int `json:"count"`
	PerPage  int `json:"per_page"`
}

func NewPage[T any](items []T, number int, p *Paginator) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Number:   number,
		NumPages: p.NumPages(),
		Count:    p.Count,
		PerPage:  p.PerPage,
	}
}

func (p *Page[T]) Len() int {
	return len(p.Items)
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextPageNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange lists every page number, for rendering page links.
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
