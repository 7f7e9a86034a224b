package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(10, 5)
	if s.Width() != 10 || s.Height() != 5 {
		t.Fatalf("NewScreen(10, 5) = %dx%d", s.Width(), s.Height())
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("cell (%d, %d) should start as space, got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColor(1, 2, '@', ColorRed)

	cell := s.GetCell(1, 2)
	if cell.Rune != '@' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 2) = %+v, expected '@' red", cell)
	}

	// Out of bounds is ignored on write and reads as blank
	s.SetColor(-1, 0, 'x', ColorRed)
	s.SetColor(4, 4, 'x', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(9, 9) != ' ' {
		t.Error("out-of-bounds reads should return space")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorDefault)

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	want := []string{"┌──┐", "│  │", "└──┘"}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, expected %q", y, got, line)
		}
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corners should carry the box color")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, '#')
	s.Resize(5, 2)

	if s.Width() != 5 || s.Height() != 2 {
		t.Fatalf("Resize() = %dx%d", s.Width(), s.Height())
	}
	if strings.ContainsRune(s.String(), '#') {
		t.Error("Resize should discard old content")
	}
}
