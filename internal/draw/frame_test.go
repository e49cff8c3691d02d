package draw

import "testing"

func TestNewFrameIsBlank(t *testing.T) {
	f := NewFrame(40, 20)
	if f.Cols() != 40 || f.Rows() != 20 {
		t.Fatalf("size = %dx%d, want 40x20", f.Cols(), f.Rows())
	}
	for y := 0; y < f.Rows(); y++ {
		for x := 0; x < f.Cols(); x++ {
			if f.At(x, y) != Blank {
				t.Fatalf("cell (%d,%d) = %q, want blank", x, y, f.At(x, y))
			}
		}
	}
}

func TestFrameSetIsColumnRow(t *testing.T) {
	f := NewFrame(5, 3)
	f.Set(4, 0, 'a')
	f.Set(0, 2, 'b')
	if got := f.Row(0); got != "    a" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := f.Row(2); got != "b    " {
		t.Fatalf("row 2 = %q", got)
	}
}

func TestFrameWriteString(t *testing.T) {
	f := NewFrame(12, 2)
	f.WriteString(1, 1, "SCORE")
	if got := f.Row(1); got != " SCORE      " {
		t.Fatalf("row 1 = %q", got)
	}
}

func TestFrameCloneIsIndependent(t *testing.T) {
	f := NewFrame(3, 3)
	f.Set(1, 1, 'x')
	c := f.Clone()
	f.Set(1, 1, 'y')
	if c.At(1, 1) != 'x' {
		t.Fatalf("clone changed with original: %q", c.At(1, 1))
	}
	if !c.SameSize(f) {
		t.Fatalf("clone size differs")
	}
}

func TestFrameOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"past last column", 5, 0},
		{"negative column", -1, 0},
		{"past last row", 0, 3},
		{"negative row", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("Set(%d,%d) did not panic", tt.x, tt.y)
				}
			}()
			f := NewFrame(5, 3)
			f.Set(tt.x, tt.y, 'z')
		})
	}
}

func TestZeroFrameIsEmpty(t *testing.T) {
	var f Frame
	if !f.Empty() {
		t.Fatalf("zero frame should be empty")
	}
	if NewFrame(1, 1).Empty() {
		t.Fatalf("1x1 frame should not be empty")
	}
}
