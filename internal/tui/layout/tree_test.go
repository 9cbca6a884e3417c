package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func podsLayout() Node {
	return Split(Horizontal,
		Weighted(50, Leaf(0)),
		Weighted(50, Leaf(1)),
	)
}

func TestSplitArea(t *testing.T) {
	tests := []struct {
		name    string
		area    Rect
		dir     Direction
		weights []int
		want    []Rect
	}{
		{
			name:    "even horizontal",
			area:    Rect{Width: 100, Height: 10},
			dir:     Horizontal,
			weights: []int{50, 50},
			want:    []Rect{{0, 0, 50, 10}, {50, 0, 50, 10}},
		},
		{
			name:    "remainder to earlier children",
			area:    Rect{Width: 10, Height: 3},
			dir:     Horizontal,
			weights: []int{1, 1, 1},
			want:    []Rect{{0, 0, 4, 3}, {4, 0, 3, 3}, {7, 0, 3, 3}},
		},
		{
			name:    "vertical with offset origin",
			area:    Rect{X: 2, Y: 5, Width: 20, Height: 10},
			dir:     Vertical,
			weights: []int{3, 7},
			want:    []Rect{{2, 5, 20, 3}, {2, 8, 20, 7}},
		},
		{
			name:    "zero weight child stays empty",
			area:    Rect{Width: 9, Height: 1},
			dir:     Horizontal,
			weights: []int{0, 1},
			want:    []Rect{{0, 0, 0, 1}, {0, 0, 9, 1}},
		},
		{
			name:    "all zero splits equally",
			area:    Rect{Width: 4, Height: 4},
			dir:     Vertical,
			weights: []int{0, 0},
			want:    []Rect{{0, 0, 4, 2}, {0, 2, 4, 2}},
		},
		{
			name:    "empty area",
			area:    Rect{},
			dir:     Horizontal,
			weights: []int{1, 2},
			want:    []Rect{{0, 0, 0, 0}, {0, 0, 0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitArea(tt.area, tt.dir, tt.weights))
		})
	}
}

func TestSplitArea_CoversWholeAxis(t *testing.T) {
	for width := 0; width < 50; width++ {
		rects := splitArea(Rect{Width: width, Height: 1}, Horizontal, []int{13, 29, 58})
		sum := 0
		for i, r := range rects {
			if i > 0 {
				assert.Equal(t, rects[i-1].Right(), r.X)
			}
			sum += r.Width
		}
		assert.Equal(t, width, sum)
	}
}

func TestNew_Validates(t *testing.T) {
	_, err := New(Flip(podsLayout()), Horizontal, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)

	_, err = New(Static(Split(Vertical)), Horizontal, 1)
	assert.ErrorIs(t, err, ErrEmptySplit)

	_, err = New(Static(Split(Vertical, Weighted(-1, Leaf(0)))), Horizontal, 1)
	assert.ErrorIs(t, err, ErrNegativeWeight)

	// Only the vertical description is broken.
	broken := func(d Direction) Node {
		if d == Vertical {
			return Leaf(3)
		}
		return Leaf(0)
	}
	_, err = New(broken, Horizontal, 1)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)

	_, err = New(nil, Horizontal, 1)
	assert.Error(t, err)

	assert.Panics(t, func() { MustNew(Static(Leaf(1)), Horizontal, 1) })
}

func TestTree_AssignAndToggle(t *testing.T) {
	tree := MustNew(Flip(podsLayout()), Horizontal, 2)
	area := Rect{Width: 80, Height: 20}

	assert.Equal(t, []Rect{{0, 0, 40, 20}, {40, 0, 40, 20}}, tree.Areas(area, 2))
	assert.Equal(t, tree.Areas(area, 2), tree.Split(area))

	tree.ToggleDirection()
	assert.Equal(t, Vertical, tree.Direction())
	assert.Equal(t, []Rect{{0, 0, 80, 10}, {0, 10, 80, 10}}, tree.Areas(area, 2))

	tree.ToggleDirection()
	assert.Equal(t, Horizontal, tree.Direction())
}

func TestTree_Nested(t *testing.T) {
	node := Split(Vertical,
		Weighted(1, Leaf(2)),
		Weighted(3, Split(Horizontal,
			Weighted(1, Leaf(0)),
			Weighted(1, Leaf(1)),
		)),
	)
	tree := MustNew(Static(node), Vertical, 3)

	got := map[int]Rect{}
	tree.Assign(Rect{Width: 10, Height: 8}, func(slot int, r Rect) { got[slot] = r })

	assert.Equal(t, map[int]Rect{
		2: {0, 0, 10, 2},
		0: {0, 2, 5, 6},
		1: {5, 2, 5, 6},
	}, got)
}

func TestTree_LeafRoot(t *testing.T) {
	tree := MustNew(Static(Leaf(0)), Horizontal, 1)
	area := Rect{X: 1, Y: 1, Width: 5, Height: 5}
	assert.Equal(t, []Rect{area}, tree.Split(area))
}

func TestFlip(t *testing.T) {
	n := Split(Horizontal, Weighted(1, Leaf(0)), Weighted(1, Split(Vertical, Weighted(1, Leaf(1)))))
	flipped := Flip(n)(Vertical)

	assert.Equal(t, Vertical, flipped.Direction)
	assert.Equal(t, Horizontal, flipped.Children[1].Node.Direction)
	assert.Equal(t, n, Flip(n)(Horizontal))
}

func TestDirection_YAML(t *testing.T) {
	var cfg struct {
		Split Direction `yaml:"split"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("split: vertical\n"), &cfg))
	assert.Equal(t, Vertical, cfg.Split)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "split: vertical\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("split: diagonal\n"), &cfg))
}

func TestNode_YAML(t *testing.T) {
	src := `
direction: vertical
children:
  - weight: 1
    slot: 0
  - weight: 2
    direction: horizontal
    children:
      - weight: 1
        slot: 1
      - weight: 1
        slot: 2
`
	var n Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	require.NoError(t, n.Validate(3))

	tree := MustNew(Static(n), Vertical, 3)
	areas := tree.Areas(Rect{Width: 10, Height: 9}, 3)
	assert.Equal(t, Rect{0, 0, 10, 3}, areas[0])
	assert.Equal(t, Rect{0, 3, 5, 6}, areas[1])
	assert.Equal(t, Rect{5, 3, 5, 6}, areas[2])
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 10, Height: 4}
	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(11, 6))
	assert.False(t, r.Contains(12, 3))
	assert.False(t, r.Contains(2, 7))

	assert.Equal(t, Rect{3, 4, 8, 2}, r.Inner(1))
	assert.Equal(t, Rect{7, 5, 0, 0}, Rect{X: 6, Y: 4, Width: 1, Height: 1}.Inner(1))
	assert.Equal(t, Rect{10, 4, 80, 21}, Rect{Width: 100, Height: 30}.Centered(80, 70))
	assert.True(t, Rect{Width: 0, Height: 3}.IsEmpty())
}

type box struct{ area Rect }

func (b *box) SetArea(r Rect) { b.area = r }

func TestAssignAll(t *testing.T) {
	tree := MustNew(Flip(podsLayout()), Horizontal, 2)
	boxes := []*box{{}, {}}
	area := Rect{Width: 10, Height: 4}

	AssignAll(tree, area, boxes)
	assert.Equal(t, Rect{0, 0, 5, 4}, boxes[0].area)
	assert.Equal(t, Rect{5, 0, 5, 4}, boxes[1].area)

	ToggleAll(tree, area, boxes)
	assert.Equal(t, Rect{0, 0, 10, 2}, boxes[0].area)
	assert.Equal(t, Rect{0, 2, 10, 2}, boxes[1].area)
}
