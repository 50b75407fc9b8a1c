package combo

import "math"

const (
	// DefaultDropdownHeight is the assumed list height used to decide the
	// opening direction.
	DefaultDropdownHeight = 200
	// DefaultMaxHeightRatio bounds the list to a share of the viewport.
	DefaultMaxHeightRatio = 0.4
)

// Rect is a bounding rectangle in screen units. Right and Bottom are
// exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Empty reports whether the rectangle has no area, which is how an
// unmeasured widget shows up.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Placement is the result of one placement decision.
type Placement struct {
	Upward    bool
	MaxHeight int
}

// Placer decides whether a dropdown opens above or below its input.
type Placer struct {
	DropdownHeight int
	MaxHeightRatio float64
}

// DefaultPlacer uses the pixel-oriented defaults.
var DefaultPlacer = Placer{DropdownHeight: DefaultDropdownHeight, MaxHeightRatio: DefaultMaxHeightRatio}

// TerminalPlacer is tuned for rows of a terminal.
var TerminalPlacer = Placer{DropdownHeight: 8, MaxHeightRatio: DefaultMaxHeightRatio}

// OpenUpward reports whether a list of dropdownHeight units should open
// above rect: there is not enough room below and enough room above.
func OpenUpward(rect Rect, viewportHeight, dropdownHeight int) bool {
	spaceBelow := viewportHeight - rect.Bottom
	return spaceBelow < dropdownHeight && rect.Top > dropdownHeight
}

// Place computes the placement for rect in a viewport of the given height.
// An empty rect or a non-positive viewport means the widget could not be
// measured and the list opens downward.
func (p Placer) Place(rect Rect, viewportHeight int) Placement {
	height := p.DropdownHeight
	if height <= 0 {
		height = DefaultDropdownHeight
	}
	if rect.Empty() || viewportHeight <= 0 {
		return Placement{MaxHeight: height}
	}

	ratio := p.MaxHeightRatio
	if ratio <= 0 {
		ratio = DefaultMaxHeightRatio
	}
	maxHeight := int(math.Floor(ratio * float64(viewportHeight)))
	if maxHeight > height {
		maxHeight = height
	}
	if maxHeight < 1 {
		maxHeight = 1
	}

	return Placement{
		Upward:    OpenUpward(rect, viewportHeight, height),
		MaxHeight: maxHeight,
	}
}
