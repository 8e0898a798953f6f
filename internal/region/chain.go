package region

import (
	"slices"
	"sort"
)

// Chain is an immutable, totally ordered set of regions. Each region's
// only prerequisite is the region immediately before it.
type Chain struct {
	regions []Region
	index   map[string]int
}

// NewChain validates regions and returns them ordered by OrderIndex.
func NewChain(regions []Region) (*Chain, error) {
	if err := validateRegions(regions); err != nil {
		return nil, err
	}

	sorted := slices.Clone(regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})

	c := &Chain{
		regions: sorted,
		index:   make(map[string]int, len(sorted)),
	}
	for i, r := range sorted {
		c.index[r.ID] = i
	}
	return c, nil
}

// MustChain is like NewChain but panics on invalid input. Intended for
// package-level defaults built from literals.
func MustChain(regions []Region) *Chain {
	c, err := NewChain(regions)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the regions in unlock order.
func (c *Chain) All() []Region {
	return slices.Clone(c.regions)
}

// Len returns the number of regions.
func (c *Chain) Len() int {
	return len(c.regions)
}

// Get returns the region with the given ID.
func (c *Chain) Get(id string) (Region, bool) {
	i, ok := c.index[id]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// Position returns the zero-based position of id in the chain, or -1.
func (c *Chain) Position(id string) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// Next returns the region that follows id, if any.
func (c *Chain) Next(id string) (Region, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.regions) {
		return Region{}, false
	}
	return c.regions[i+1], true
}

// Prev returns the region that precedes id, if any.
func (c *Chain) Prev(id string) (Region, bool) {
	i, ok := c.index[id]
	if !ok || i == 0 {
		return Region{}, false
	}
	return c.regions[i-1], true
}

// IsFirst reports whether id is the head of the chain.
func (c *Chain) IsFirst(id string) bool {
	i, ok := c.index[id]
	return ok && i == 0
}
