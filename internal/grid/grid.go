// Package grid provides the square play-field geometry used by the snake engine.
// Positions live in pixel space: every valid coordinate is a multiple of the
// cell size and lies inside [0, Dimension*CellSize).
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a grid cannot be built from its configuration.
var ErrInvalidConfig = errors.New("grid: invalid configuration")

// Position is a pixel-space coordinate on the grid.
type Position struct {
	X, Y int
}

// NoPosition marks the absence of a position (e.g. no free cell for food).
var NoPosition = Position{X: -1, Y: -1}

// Add returns p shifted by (dx, dy) pixels.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String formats the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Config describes the grid: CellSize pixels per cell, Dimension cells per side.
type Config struct {
	CellSize  int
	Dimension int
}

// RandomSource supplies entropy for cell placement.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Model is an immutable N×N grid. It carries no state beyond its configuration.
type Model struct {
	cfg Config
}

// New validates cfg and returns a grid model.
func New(cfg Config) (*Model, error) {
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, cfg.CellSize)
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidConfig, cfg.Dimension)
	}
	return &Model{cfg: cfg}, nil
}

// Config returns the grid configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// CellSize returns the size of one cell in pixels.
func (m *Model) CellSize() int {
	return m.cfg.CellSize
}

// Dimension returns the number of cells per side.
func (m *Model) Dimension() int {
	return m.cfg.Dimension
}

// Width returns the play-field width in pixels.
func (m *Model) Width() int {
	return m.cfg.Dimension * m.cfg.CellSize
}

// Height returns the play-field height in pixels.
func (m *Model) Height() int {
	return m.cfg.Dimension * m.cfg.CellSize
}

// CellCount returns the total number of cells.
func (m *Model) CellCount() int {
	return m.cfg.Dimension * m.cfg.Dimension
}

// Center returns the cell-aligned centre of the grid.
// For even dimensions this equals (Width/2, Height/2).
func (m *Model) Center() Position {
	c := (m.cfg.Dimension / 2) * m.cfg.CellSize
	return Position{X: c, Y: c}
}

// PositionOf converts a cell index pair to a pixel position.
// Out-of-range indices produce out-of-bounds positions; check with IsInBounds.
func (m *Model) PositionOf(col, row int) Position {
	return Position{X: col * m.cfg.CellSize, Y: row * m.cfg.CellSize}
}

// CellOf converts a pixel position to its cell indices.
// Negative coordinates round toward negative infinity so that (-CellSize, 0)
// maps to column -1 rather than 0.
func (m *Model) CellOf(p Position) (col, row int) {
	return floorDiv(p.X, m.cfg.CellSize), floorDiv(p.Y, m.cfg.CellSize)
}

// Step advances p by one cell in direction (dx, dy), where dx and dy are unit components.
func (m *Model) Step(p Position, dx, dy int) Position {
	return p.Add(dx*m.cfg.CellSize, dy*m.cfg.CellSize)
}

// IsInBounds reports whether both coordinates lie inside [0, Dimension*CellSize).
func (m *Model) IsInBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width() && p.Y >= 0 && p.Y < m.Height()
}

// RandomCellPosition returns a uniformly random cell-aligned position.
// It does not look at occupancy; callers that need a free cell must retry.
func (m *Model) RandomCellPosition(rng RandomSource) Position {
	col := rng.Intn(m.cfg.Dimension)
	row := rng.Intn(m.cfg.Dimension)
	return m.PositionOf(col, row)
}

// Cells returns every cell position in row-major order.
func (m *Model) Cells() []Position {
	cells := make([]Position, 0, m.CellCount())
	for row, rowEnd := 0, m.cfg.Dimension; row < rowEnd; row++ {
		for col, colEnd := 0, m.cfg.Dimension; col < colEnd; col++ {
			cells = append(cells, m.PositionOf(col, row))
		}
	}
	return cells
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
