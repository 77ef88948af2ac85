package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTween_Converges(t *testing.T) {
	tests := []struct {
		name string
		from float64
		to   float64
	}{
		{"upward", 0, 100},
		{"downward", 100, 20},
		{"fractional", 1.5, 2.75},
		{"negative", -5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTween(tt.from, tt.to)
			assert.False(t, tw.Done())

			frames := 0
			prev := tt.from
			for !tw.Done() {
				v, _ := tw.Next()
				frames++
				if tt.to > tt.from {
					assert.GreaterOrEqual(t, v, prev, "moves monotonically")
				} else {
					assert.LessOrEqual(t, v, prev, "moves monotonically")
				}
				prev = v
				if frames > 20 {
					t.Fatal("tween did not terminate")
				}
			}
			assert.LessOrEqual(t, frames, tweenSteps+1)
			assert.Equal(t, tt.to, tw.Value(), "lands exactly on the target")
		})
	}
}

func TestTween_WithinTolerance(t *testing.T) {
	tw := NewTween(10, 10.005)
	assert.True(t, tw.Done())
	assert.Equal(t, 10.005, tw.Value())

	v, done := tw.Next()
	assert.True(t, done)
	assert.Equal(t, 10.005, v)
}
