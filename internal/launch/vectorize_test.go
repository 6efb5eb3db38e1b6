package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidthForAddr(t *testing.T) {
	cases := []struct {
		name     string
		addr     uintptr
		elemSize int
		max      int
		want     int
	}{
		{"Aligned16", 0x1000, 4, 4, 4},
		{"Aligned8Only", 0x1008, 4, 4, 2},
		{"Aligned4Only", 0x1004, 4, 4, 1},
		{"Odd", 0x1001, 1, 4, 1},
		{"Float64Aligned32", 0x2000, 8, 4, 4},
		{"Float64Aligned16Only", 0x2010, 8, 4, 2},
		{"CappedAt2", 0x1000, 4, 2, 2},
		{"CappedAt1", 0x1000, 4, 1, 1},
		{"ByteAligned4", 0x1004, 1, 4, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, widthForAddr(tc.addr, tc.elemSize, tc.max))
		})
	}
}

func TestSelectWidth_MinAcrossOperands(t *testing.T) {
	max := platformMaxWidth()

	// All operands fully aligned: the platform cap wins.
	w := SelectWidth([]uintptr{0x1000, 0x2000, 0x3000}, []int{4, 4, 4})
	assert.Equal(t, max, w)

	// One misaligned operand drags everyone down.
	w = SelectWidth([]uintptr{0x1000, 0x2008, 0x3000}, []int{4, 4, 4})
	assert.Equal(t, min(max, 2), w)

	w = SelectWidth([]uintptr{0x1000, 0x2004, 0x3000}, []int{4, 4, 4})
	assert.Equal(t, 1, w)
}

func TestSelectWidth_WidthOneAlwaysValid(t *testing.T) {
	// Pathological addresses still yield a usable width.
	w := SelectWidth([]uintptr{1, 3, 7}, []int{4, 8, 4})
	assert.Equal(t, 1, w)
}

func TestSelectWidth_NoOperands(t *testing.T) {
	assert.Equal(t, platformMaxWidth(), SelectWidth(nil, nil))
}
