package gait

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByIndex(t *testing.T) {
	for i := 0; i < 6; i++ {
		p, err := ByIndex(i)
		require.NoError(t, err)
		assert.Equal(t, Kind(i), p.Kind)
	}

	for _, i := range []int{-1, 6, 100} {
		_, err := ByIndex(i)
		assert.True(t, errors.Is(err, ErrUnknownGait), "index %d", i)
	}
}

func TestProfilesAreSane(t *testing.T) {
	for _, p := range Profiles {
		assert.Greater(t, p.PushFraction, 0.0, p.Kind.String())
		assert.Less(t, p.PushFraction, 1.0, p.Kind.String())

		for _, ph := range p.Phases {
			assert.GreaterOrEqual(t, ph, 0.0)
			assert.Less(t, ph, 1.0)
		}
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "tripod", Tripod.String())
	assert.Equal(t, "hop", Hop.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
