package kinematics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOffsets(t *testing.T) {
	type eg struct {
		in  []float64
		err bool
	}

	examples := []eg{
		{make([]float64, 18), false},
		{make([]float64, 16), true},
		{make([]float64, 20), true},
		{nil, true},
	}

	for i, x := range examples {
		for j := range x.in {
			x.in[j] = float64(j + 1)
		}

		o, err := NormalizeOffsets(x.in)
		assert.Equal(t, x.err, err != nil, "example %d", i+1)
		assert.Len(t, o, 18)

		for j := range o {
			if j < len(x.in) {
				assert.Equal(t, float64(j+1), o[j], "example %d:%d", i+1, j)
			} else {
				assert.Equal(t, 0.0, o[j], "example %d:%d", i+1, j)
			}
		}
	}
}

func TestNormalizeOffsetsError(t *testing.T) {
	_, err := NormalizeOffsets(make([]float64, 16))

	var ie *InvalidOffsetCountError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 16, ie.Len)
}

func TestAdjust(t *testing.T) {
	var o Offsets

	v, err := o.Adjust(2, Femur, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, 5.0, o[7])

	v, err = o.Adjust(2, Femur, 100)
	require.NoError(t, err)
	assert.Equal(t, MaxOffset, v)

	v, err = o.Adjust(2, Femur, -100)
	require.NoError(t, err)
	assert.Equal(t, -MaxOffset, v)
}

func TestAdjustInvalidIndex(t *testing.T) {
	type eg struct {
		leg   int
		joint int
		kind  IndexKind
		value int
	}

	examples := []eg{
		{6, 0, IndexLeg, 6},
		{-1, 0, IndexLeg, -1},
		{0, 3, IndexJoint, 3},
	}

	for i, x := range examples {
		var o Offsets
		_, err := o.Adjust(x.leg, x.joint, 1)

		var ie *InvalidIndexError
		require.True(t, errors.As(err, &ie), "example %d", i+1)
		assert.Equal(t, x.kind, ie.Kind)
		assert.Equal(t, x.value, ie.Value)
		assert.Equal(t, Offsets{}, o, "example %d", i+1)
	}
}

func TestPrint(t *testing.T) {
	var o Offsets
	o[3] = 1.5
	o[17] = -2

	buf := &bytes.Buffer{}
	require.NoError(t, o.Print(buf))

	out := buf.String()
	assert.Contains(t, out, "coxa")
	assert.Contains(t, out, "+1.5")
	assert.Contains(t, out, "-2.0")
	assert.Equal(t, 7, bytes.Count(buf.Bytes(), []byte("\n")))
}
