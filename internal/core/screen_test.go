package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorViridian)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorViridian {
		t.Errorf("GetCell(5, 5) = %+v, expected X/viridian", cell)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(8, 0, "abc", ColorHUD)

	if s.Get(8, 0) != 'a' || s.Get(9, 0) != 'b' {
		t.Errorf("DrawText wrote %q%q", s.Get(8, 0), s.Get(9, 0))
	}
	if s.GetCell(8, 0).Color != ColorHUD {
		t.Error("DrawText should color cells")
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(1, 1, 2, 2), '#', ColorWall)
	if s.Get(1, 1) != '#' || s.Get(2, 2) != '#' || s.Get(3, 3) != ' ' {
		t.Errorf("DrawRect mismatch:\n%s", s.String())
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 6, 4), ColorHUD)
	if s.Get(0, 0) != '┌' || s.Get(5, 3) != '┘' || s.Get(2, 0) != '─' || s.Get(0, 2) != '│' {
		t.Errorf("DrawBox mismatch:\n%s", s.String())
	}
}

func TestScreenResizeAndString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'z')
	s.Resize(2, 3)

	if s.Get(0, 0) != 'a' {
		t.Error("Resize should keep content inside the new bounds")
	}
	lines := strings.Split(s.String(), "\n")
	if len(lines) != 3 || lines[0] != "a " {
		t.Errorf("String() = %q", s.String())
	}
}
