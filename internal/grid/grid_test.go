package grid

import (
	"errors"
	"math/rand"
	"testing"
)

// seqSource returns scripted values, cycling when exhausted.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero cell size", Config{CellSize: 0, Dimension: 20}},
		{"negative cell size", Config{CellSize: -5, Dimension: 20}},
		{"zero dimension", Config{CellSize: 20, Dimension: 0}},
		{"negative dimension", Config{CellSize: 20, Dimension: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.cfg)
			if err == nil {
				t.Fatalf("New(%+v) succeeded, expected error", tc.cfg)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			if m != nil {
				t.Error("expected nil model on error")
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	m, err := New(Config{CellSize: 20, Dimension: 20})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if m.Width() != 400 || m.Height() != 400 {
		t.Errorf("field = %dx%d, expected 400x400", m.Width(), m.Height())
	}
	if m.CellCount() != 400 {
		t.Errorf("CellCount() = %d, expected 400", m.CellCount())
	}
	if c := m.Center(); c != (Position{X: 200, Y: 200}) {
		t.Errorf("Center() = %v, expected (200,200)", c)
	}
}

func TestCenterOddDimensionIsCellAligned(t *testing.T) {
	m, _ := New(Config{CellSize: 20, Dimension: 5})

	c := m.Center()
	if c.X%20 != 0 || c.Y%20 != 0 {
		t.Errorf("Center() = %v is not cell-aligned", c)
	}
	if c != (Position{X: 40, Y: 40}) {
		t.Errorf("Center() = %v, expected (40,40)", c)
	}
}

func TestIsInBounds(t *testing.T) {
	m, _ := New(Config{CellSize: 20, Dimension: 5})

	tests := []struct {
		name     string
		p        Position
		expected bool
	}{
		{"origin", Position{0, 0}, true},
		{"last cell", Position{80, 80}, true},
		{"right edge (exclusive)", Position{100, 0}, false},
		{"bottom edge (exclusive)", Position{0, 100}, false},
		{"negative x", Position{-20, 0}, false},
		{"negative y", Position{0, -20}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.IsInBounds(tc.p); got != tc.expected {
				t.Errorf("IsInBounds(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestCellConversionRoundTrip(t *testing.T) {
	m, _ := New(Config{CellSize: 16, Dimension: 10})

	for _, p := range m.Cells() {
		col, row := m.CellOf(p)
		if back := m.PositionOf(col, row); back != p {
			t.Errorf("PositionOf(CellOf(%v)) = %v", p, back)
		}
	}

	if col, row := m.CellOf(Position{X: -16, Y: 0}); col != -1 || row != 0 {
		t.Errorf("CellOf(-16,0) = (%d,%d), expected (-1,0)", col, row)
	}
}

func TestStep(t *testing.T) {
	m, _ := New(Config{CellSize: 20, Dimension: 5})

	if got := m.Step(Position{80, 0}, 1, 0); got != (Position{100, 0}) {
		t.Errorf("Step right = %v, expected (100,0)", got)
	}
	if got := m.Step(Position{0, 0}, 0, -1); got != (Position{0, -20}) {
		t.Errorf("Step up = %v, expected (0,-20)", got)
	}
}

func TestRandomCellPositionUsesSource(t *testing.T) {
	m, _ := New(Config{CellSize: 20, Dimension: 5})

	src := &seqSource{vals: []int{3, 1}}
	p := m.RandomCellPosition(src)
	if p != (Position{X: 60, Y: 20}) {
		t.Errorf("RandomCellPosition() = %v, expected (60,20)", p)
	}
	if src.i != 2 {
		t.Errorf("expected 2 draws from the source, got %d", src.i)
	}
}

func TestRandomCellPositionAlwaysValid(t *testing.T) {
	m, _ := New(Config{CellSize: 20, Dimension: 7})
	rng := rand.New(rand.NewSource(42))

	seen := make(map[Position]bool)
	for rep := 0; rep < 2000; rep++ {
		p := m.RandomCellPosition(rng)
		if !m.IsInBounds(p) {
			t.Fatalf("position %v out of bounds", p)
		}
		if p.X%20 != 0 || p.Y%20 != 0 {
			t.Fatalf("position %v not cell-aligned", p)
		}
		seen[p] = true
	}

	// 2000 draws over 49 cells should hit all of them
	if len(seen) != m.CellCount() {
		t.Errorf("visited %d cells, expected %d", len(seen), m.CellCount())
	}
}
