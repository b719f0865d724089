// Package paginator splits ordered listings into fixed-size pages.
package paginator

import "strconv"

// Paginator describes a listing of Count items split into pages of PerPage.
type Paginator struct {
	Count   int64
	PerPage int
}

// NumPages is never less than one, so an empty listing still has a first page.
func (p Paginator) NumPages() int {
	if p.Count <= 0 || p.PerPage <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Number resolves a raw page query value. Anything that is not an integer
// yields the first page; integers outside the valid range yield the last.
func (p Paginator) Number(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 || n > p.NumPages() {
		return p.NumPages()
	}
	return n
}

// Offset is the number of items preceding page number.
func (p Paginator) Offset(number int) int {
	if number < 1 {
		number = 1
	}
	return (number - 1) * p.PerPage
}

// Page is one page of a listing.
type Page[T any] struct {
	Items     []T
	Number    int
	Paginator Paginator
}

func (p *Page[T]) Len() int {
	return len(p.Items)
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.Paginator.NumPages()
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousNumber() int {
	return p.Number - 1
}

// NumPages is exposed on the page for templates.
func (p *Page[T]) NumPages() int {
	return p.Paginator.NumPages()
}
