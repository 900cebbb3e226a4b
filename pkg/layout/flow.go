package layout

import "image"

// DefaultSpacing is used when neither the layout nor the style hook provide
// a spacing.
const DefaultSpacing = 1

// Orientation selects the spacing axis queried from a StyleHook.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Item is a fixed-size element of a Flow. Items do not know about the layout.
type Item interface {
	// SizeHint returns the intrinsic size used for placement.
	SizeHint() image.Point
	// MinimumSize returns the smallest acceptable size.
	MinimumSize() image.Point
}

// StyleHook negotiates the spacing after item along the given axis.
// ok is false when the style has no opinion.
type StyleHook func(item Item, o Orientation) (spacing int, ok bool)

// Flow arranges items left to right, wrapping to a new row when the next
// item would overflow the available width. The first item of a row is never
// wrapped away, so every row makes progress even when too narrow.
type Flow struct {
	items []Item
	geom  []image.Rectangle

	hSpacing int
	vSpacing int
	style    StyleHook
}

// Option configures a Flow.
type Option func(*Flow)

// WithSpacing fixes the horizontal and vertical spacing. A negative value
// defers that axis to the style hook.
func WithSpacing(horizontal, vertical int) Option {
	return func(f *Flow) {
		f.hSpacing = horizontal
		f.vSpacing = vertical
	}
}

// WithStyle installs a spacing negotiation hook.
func WithStyle(hook StyleHook) Option {
	return func(f *Flow) {
		f.style = hook
	}
}

// New creates an empty flow. Spacing is deferred to the style by default.
func New(opts ...Option) *Flow {
	f := &Flow{hSpacing: -1, vSpacing: -1}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Add appends items.
func (f *Flow) Add(items ...Item) {
	f.items = append(f.items, items...)
	f.geom = append(f.geom, make([]image.Rectangle, len(items))...)
}

// Count returns the number of items.
func (f *Flow) Count() int {
	return len(f.items)
}

// ItemAt returns the item at index, or nil when out of range.
func (f *Flow) ItemAt(index int) Item {
	if index < 0 || index >= len(f.items) {
		return nil
	}
	return f.items[index]
}

// TakeAt removes and returns the item at index, or nil when out of range.
func (f *Flow) TakeAt(index int) Item {
	if index < 0 || index >= len(f.items) {
		return nil
	}
	it := f.items[index]
	f.items = append(f.items[:index], f.items[index+1:]...)
	f.geom = append(f.geom[:index], f.geom[index+1:]...)
	return it
}

// Clear removes every item.
func (f *Flow) Clear() {
	f.items = nil
	f.geom = nil
}

// Geometry returns the rectangle assigned to the item at index by the last
// Arrange.
func (f *Flow) Geometry(index int) image.Rectangle {
	if index < 0 || index >= len(f.geom) {
		return image.Rectangle{}
	}
	return f.geom[index]
}

// Arrange places every item within width and returns the total height.
func (f *Flow) Arrange(width int) int {
	return f.doLayout(width, f.geom)
}

// HeightForWidth returns the height Arrange would produce for width without
// touching placements.
func (f *Flow) HeightForWidth(width int) int {
	return f.doLayout(width, nil)
}

// MinimumSize returns, per axis, the largest item minimum. It is a
// single-row bound that does not depend on the wrap width.
func (f *Flow) MinimumSize() image.Point {
	var size image.Point
	for _, it := range f.items {
		size = maxPoint(size, it.MinimumSize())
	}
	return size
}

// Spacing reports the spacing used after item along o.
func (f *Flow) Spacing(item Item, o Orientation) int {
	fixed := f.hSpacing
	if o == Vertical {
		fixed = f.vSpacing
	}
	if fixed >= 0 {
		return fixed
	}
	if f.style != nil {
		if s, ok := f.style(item, o); ok && s >= 0 {
			return s
		}
	}
	return DefaultSpacing
}

// doLayout runs the row-breaking pass. When out is non-nil, placements are
// written into it.
func (f *Flow) doLayout(width int, out []image.Rectangle) int {
	if width < 0 {
		width = 0
	}

	x, y := 0, 0
	rowHeight := 0
	rowItems := 0

	for i, it := range f.items {
		hint := it.SizeHint()
		spaceX := f.Spacing(it, Horizontal)
		spaceY := f.Spacing(it, Vertical)

		if rowItems > 0 && x+hint.X > width {
			x = 0
			y += rowHeight + spaceY
			rowHeight = 0
			rowItems = 0
		}

		if out != nil {
			out[i] = image.Rectangle{
				Min: image.Pt(x, y),
				Max: image.Pt(x+hint.X, y+hint.Y),
			}
		}

		x += hint.X + spaceX
		rowHeight = max(rowHeight, hint.Y)
		rowItems++
	}

	return y + rowHeight
}

func maxPoint(a, b image.Point) image.Point {
	return image.Pt(max(a.X, b.X), max(a.Y, b.Y))
}
