package grid

import "testing"

func TestRenderCellFlags(t *testing.T) {
	s := New()
	s.SetDayCount(10)
	s.SetMinEnabledIndex(2)
	s.SetMaxEnabledIndex(6)
	s.SetSelectedDayIndex(8)

	var clicked []int
	layout := s.Render(func(i int) { clicked = append(clicked, i) })
	if len(layout.Cells) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(layout.Cells))
	}
	for i, c := range layout.Cells {
		if c.Index != i || c.Day != i+1 {
			t.Fatalf("cell %d not index-stable: %+v", i, c)
		}
		wantDisabled := i < 2 || i >= 6
		if c.Disabled != wantDisabled {
			t.Fatalf("cell %d: expected disabled=%v, got %+v", i, wantDisabled, c)
		}
		if (c.OnSelect == nil) != wantDisabled {
			t.Fatalf("cell %d: click handler mismatch: %+v", i, c)
		}
		if c.Selected != (i == 8) {
			t.Fatalf("cell %d: unexpected selected flag", i)
		}
		if c.OnSelect != nil {
			c.OnSelect()
		}
	}
	if len(clicked) != 4 || clicked[0] != 2 || clicked[3] != 5 {
		t.Fatalf("unexpected clicks: %v", clicked)
	}
}

func TestRenderSelectedOutOfRangeStaysDisabled(t *testing.T) {
	s := New()
	s.SetDayCount(5)
	s.SetSelectedDayIndex(4)
	s.SetMaxEnabledIndex(3)

	layout := s.Render(func(int) { t.Fatal("disabled cell must not be clickable") })
	sel := layout.Cells[4]
	if !sel.Selected || !sel.Disabled || sel.OnSelect != nil {
		t.Fatalf("unexpected selected cell: %+v", sel)
	}
}

func TestRenderSelectionBeyondDayCountIgnored(t *testing.T) {
	s := New()
	s.SetDayCount(3)
	s.SetSelectedDayIndex(9)
	layout := s.Render(nil)
	if len(layout.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(layout.Cells))
	}
	for _, c := range layout.Cells {
		if c.Selected || c.OnSelect != nil {
			t.Fatalf("unexpected cell: %+v", c)
		}
	}
}

func TestOffsetPlacement(t *testing.T) {
	s := New()
	s.SetDayCount(14)
	s.SetGridOffset(4)

	layout := s.Render(nil)
	if layout.Offset.Column != 4 || layout.Offset.String() != "grid-column-start: 4" {
		t.Fatalf("unexpected offset: %+v", layout.Offset)
	}
	if row, col := layout.Offset.CellPosition(0); row != 0 || col != 3 {
		t.Fatalf("expected first cell at row 0 col 3, got %d,%d", row, col)
	}
	if row, col := layout.Offset.CellPosition(13); row != 2 || col != 2 {
		t.Fatalf("expected last cell at row 2 col 2, got %d,%d", row, col)
	}
	if layout.Cells[len(layout.Cells)-1].Index != 13 {
		t.Fatalf("expected last index 13, got %+v", layout.Cells[len(layout.Cells)-1])
	}

	if _, ok := layout.Offset.IndexAt(0, 2, 14); ok {
		t.Fatal("expected leading blank to miss")
	}
	if i, ok := layout.Offset.IndexAt(1, 0, 14); !ok || i != 4 {
		t.Fatalf("expected index 4 at row 1 col 0, got %d %v", i, ok)
	}
	if _, ok := layout.Offset.IndexAt(2, 3, 14); ok {
		t.Fatal("expected slot past last cell to miss")
	}
}

func TestOffsetClamp(t *testing.T) {
	for _, tc := range []struct{ in, want int }{{0, 1}, {-3, 1}, {1, 1}, {7, 7}, {9, 7}} {
		if got := newOffsetStyle(tc.in).Column; got != tc.want {
			t.Fatalf("offset %d: expected column %d, got %d", tc.in, tc.want, got)
		}
	}
}
