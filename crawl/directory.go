// Ordered shop directory.
// Keeps shops in discovery order and ignores repeated endpoints.

package crawl

import (
	"iter"

	"github.com/gaurav-prasanna/flyerpipe/core"
)

// Directory maps shop endpoints to display names, in insertion order.
type Directory struct {
	shops []core.Shop
	seen  map[string]bool
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		seen: make(map[string]bool),
	}
}

// Add records a shop if its endpoint hasn't been seen before.
func (d *Directory) Add(endpoint, name string) {
	if d.seen[endpoint] {
		return
	}
	d.seen[endpoint] = true
	d.shops = append(d.shops, core.Shop{Endpoint: endpoint, Name: name})
}

// Len returns the number of shops.
func (d *Directory) Len() int {
	return len(d.shops)
}

// Shops returns all shops in discovery order.
func (d *Directory) Shops() []core.Shop {
	return d.shops
}

// All iterates endpoint -> name pairs in discovery order.
func (d *Directory) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, s := range d.shops {
			if !yield(s.Endpoint, s.Name) {
				return
			}
		}
	}
}
