package core

import (
	"strconv"
	"sync/atomic"
)

// TagCounter hands out tag ids. One counter is shared by every file compiled
// into the same page namespace; it only moves forward.
type TagCounter struct {
	n atomic.Int64
}

func NewTagCounter() *TagCounter {
	return &TagCounter{}
}

func (c *TagCounter) Next() string {
	return strconv.FormatInt(c.n.Add(1)-1, 10)
}

// Peek returns the value the next call to Next will use.
func (c *TagCounter) Peek() int64 {
	return c.n.Load()
}

// ListTagID is the id of an element rendered once per loop iteration.
func ListTagID(base, indexExpr string) string {
	return base + "-{{" + indexExpr + "}}"
}
