package text

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("line %d", i)
	}
	return items
}

func TestBuffer_AppendComputesRows(t *testing.T) {
	b := NewBuffer(Options{})

	b.AppendItems(numbered(20), 40, 12)

	assert.Equal(t, 20, b.Len())
	assert.Equal(t, 10, b.Rows(), "20 lines minus a 10 row viewport")
	assert.Equal(t, 0, b.Offset())

	b.AppendItems(numbered(5), 40, 12)
	assert.Equal(t, 25, b.Len())
	assert.Equal(t, 15, b.Rows())
}

func TestBuffer_RowsNeverNegative(t *testing.T) {
	b := NewBuffer(Options{})
	b.AppendItems(numbered(3), 40, 30)
	assert.Equal(t, 0, b.Rows())
	assert.True(t, b.IsAtBottom())
}

func TestBuffer_AppendWrapsAtInnerWidth(t *testing.T) {
	b := NewBuffer(Options{})
	b.AppendItems([]string{"aaaaaaaaaaaaaaa"}, 12, 10)

	require.Equal(t, 2, b.Len())
	assert.Equal(t, "aaaaaaaaaa", b.Lines()[0].Plain())
	assert.Equal(t, "aaaaa", b.Lines()[1].Plain())
}

func TestBuffer_Scroll(t *testing.T) {
	b := NewBuffer(Options{})
	b.AppendItems(numbered(30), 40, 12)

	b.ScrollDown(5)
	assert.Equal(t, 5, b.Offset())

	b.ScrollDown(100)
	assert.Equal(t, b.Rows(), b.Offset())

	b.ScrollUp(3)
	assert.Equal(t, b.Rows()-3, b.Offset())

	b.ScrollUp(100)
	assert.Equal(t, 0, b.Offset())

	b.ScrollBottom()
	assert.True(t, b.IsAtBottom())

	b.ScrollTop()
	assert.Equal(t, 0, b.Offset())
}

func TestBuffer_ScrollStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	b := NewBuffer(Options{})
	b.AppendItems(numbered(50), 40, 12)

	for range 1000 {
		switch rng.IntN(5) {
		case 0:
			b.ScrollDown(rng.IntN(20))
		case 1:
			b.ScrollUp(rng.IntN(20))
		case 2:
			b.ScrollTop()
		case 3:
			b.ScrollBottom()
		case 4:
			b.AppendItems(numbered(rng.IntN(3)), 40, 12)
		}
		assert.GreaterOrEqual(t, b.Offset(), 0)
		assert.LessOrEqual(t, b.Offset(), b.Rows())
	}

	b.ScrollBottom()
	assert.True(t, b.IsAtBottom())
}

func TestBuffer_Visible(t *testing.T) {
	b := NewBuffer(Options{})
	b.AppendItems(numbered(30), 40, 12)

	b.ScrollDown(4)
	visible := b.Visible(10)
	require.Len(t, visible, 10)
	assert.Equal(t, "line 4", visible[0].Plain())

	b.ScrollBottom()
	visible = b.Visible(10)
	require.Len(t, visible, 10)
	assert.Equal(t, "line 29", visible[9].Plain())

	assert.Empty(t, NewBuffer(Options{}).Visible(10))
}

func TestBuffer_Follow(t *testing.T) {
	b := NewBuffer(Options{})
	b.SetFollow(true)
	b.AppendItems(numbered(30), 40, 12)
	assert.True(t, b.IsAtBottom())

	b.AppendItems(numbered(5), 40, 12)
	assert.True(t, b.IsAtBottom(), "stays at bottom while following")

	b.ScrollUp(2)
	b.AppendItems(numbered(5), 40, 12)
	assert.False(t, b.IsAtBottom(), "does not jump when the user scrolled away")
}

func TestBuffer_ReplaceAndClear(t *testing.T) {
	b := NewBuffer(Options{})
	b.AppendItems(numbered(30), 40, 12)
	b.ScrollDown(7)

	b.ReplaceItems([]string{"one", "two"})
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 0, b.Offset())
	assert.Equal(t, []string{"one", "two"}, b.Items())

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Rows())
	assert.True(t, b.IsAtBottom())
}

func TestBuffer_ReplaceIgnoresFollow(t *testing.T) {
	b := NewBuffer(Options{})
	b.SetFollow(true)
	b.AppendItems(numbered(30), 40, 12)
	require.True(t, b.IsAtBottom())

	b.ReplaceItems(numbered(40))
	assert.Equal(t, 0, b.Offset())
	assert.True(t, b.Follow())
}

func TestBuffer_ResizeRewraps(t *testing.T) {
	b := NewBuffer(Options{})
	b.ReplaceItems([]string{"aaaaaaaaaaaaaaa"})
	assert.Equal(t, 1, b.Len(), "unwrapped before the first layout")

	b.Resize(7, 10)
	assert.Equal(t, 3, b.Len())

	b.Resize(22, 10)
	assert.Equal(t, 1, b.Len())
}
