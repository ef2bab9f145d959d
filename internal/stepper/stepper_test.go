package stepper

import "testing"

func TestNextThenPreviousReturnsToOrigin(t *testing.T) {
	for length := 1; length < 10; length++ {
		for i := 0; i < length-1; i++ {
			c := At(length, i)
			if got := c.Next().Previous(); got != c {
				t.Fatalf("len %d index %d: expected %+v, got %+v", length, i, c, got)
			}
		}
	}
}

func TestCursorNeverLeavesBounds(t *testing.T) {
	c := New(9)

	for i := 0; i < 20; i++ {
		c = c.Next()
		if c.Index() < 0 || c.Index() > 8 {
			t.Fatalf("index %d out of bounds", c.Index())
		}
	}
	if !c.AtEnd() || c.Index() != 8 {
		t.Fatalf("expected to stop at 8, got %d", c.Index())
	}

	for i := 0; i < 20; i++ {
		c = c.Previous()
	}
	if !c.AtStart() || c.Index() != 0 {
		t.Fatalf("expected to stop at 0, got %d", c.Index())
	}
}

func TestAtClamps(t *testing.T) {
	if got := At(5, 42).Index(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := At(5, -3).Index(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestEmptyCursorIsInert(t *testing.T) {
	c := New(0)
	if c.Next() != c || c.Previous() != c || c.Last() != c {
		t.Fatal("expected moves on an empty cursor to be no-ops")
	}
	if c.Position() != "Step 0 of 0" {
		t.Fatalf("unexpected position %q", c.Position())
	}
}

func TestMove(t *testing.T) {
	c := At(9, 4)

	tests := []struct {
		direction string
		want      int
	}{
		{direction: "", want: 4},
		{direction: "next", want: 5},
		{direction: "Previous", want: 3},
		{direction: "prev", want: 3},
		{direction: "first", want: 0},
		{direction: "last", want: 8},
	}

	for _, tc := range tests {
		got, err := c.Move(tc.direction)
		if err != nil {
			t.Fatalf("Move(%q): %v", tc.direction, err)
		}
		if got.Index() != tc.want {
			t.Fatalf("Move(%q): expected %d, got %d", tc.direction, tc.want, got.Index())
		}
	}

	if _, err := c.Move("sideways"); err == nil {
		t.Fatal("expected error for unknown move")
	}
}

func TestPosition(t *testing.T) {
	if got := At(9, 3).Position(); got != "Step 3 of 8" {
		t.Fatalf("expected %q, got %q", "Step 3 of 8", got)
	}
}
