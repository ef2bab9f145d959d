// Package stepper holds the position of a viewer inside a finished run.
//
// A Cursor is a plain value: moving it returns a new Cursor and never touches
// the run it points into.
package stepper

import (
	"fmt"
	"strings"
)

type Cursor struct {
	index  int
	length int
}

// New returns a cursor at the first of length steps.
func New(length int) Cursor {
	return At(length, 0)
}

// At returns a cursor at index, clamped to [0, length-1].
func At(length, index int) Cursor {
	if length <= 0 {
		return Cursor{}
	}
	return Cursor{index: min(max(index, 0), length-1), length: length}
}

func (c Cursor) Index() int { return c.index }

func (c Cursor) Len() int { return c.length }

func (c Cursor) AtStart() bool { return c.index == 0 }

func (c Cursor) AtEnd() bool { return c.length == 0 || c.index == c.length-1 }

func (c Cursor) Next() Cursor { return At(c.length, c.index+1) }

func (c Cursor) Previous() Cursor { return At(c.length, c.index-1) }

func (c Cursor) First() Cursor { return At(c.length, 0) }

func (c Cursor) Last() Cursor { return At(c.length, c.length-1) }

// Move applies a named movement: "next", "previous" (or "prev"), "first",
// "last". The empty string leaves the cursor where it is.
func (c Cursor) Move(direction string) (Cursor, error) {
	switch strings.ToLower(direction) {
	case "":
		return c, nil
	case "next":
		return c.Next(), nil
	case "previous", "prev":
		return c.Previous(), nil
	case "first":
		return c.First(), nil
	case "last":
		return c.Last(), nil
	}
	return c, fmt.Errorf("unknown move %q", direction)
}

// Position is the counter shown above the table, e.g. "Step 3 of 8". The
// Initialize row is step 0.
func (c Cursor) Position() string {
	return fmt.Sprintf("Step %d of %d", c.index, max(c.length-1, 0))
}
