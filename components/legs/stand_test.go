package legs

import (
	"testing"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandMovesAtMostThreeLegs(t *testing.T) {
	s, r := newSolver()
	placeAll(s, DefaultSleepPose)

	st := NewStand(s, 173, -60)
	st.Reset(false, false)

	ticks := 0
	for {
		r.Reset()
		done, err := st.Update()
		require.NoError(t, err)
		ticks++

		if done {
			break
		}

		assert.LessOrEqual(t, len(movedLegs(r)), 3, "tick %d", ticks)
		assert.LessOrEqual(t, len(st.Moving()), 3)
		require.Less(t, ticks, 1000)
	}

	// Two passes of 51 ticks.
	assert.Equal(t, 102, ticks)

	for i := 0; i < kinematics.NumLegs; i++ {
		assert.Equal(t, st.End(), s.Position(i))
	}
}

func TestStandGroupsDontOverlap(t *testing.T) {
	s, _ := newSolver()
	placeAll(s, DefaultSleepPose)

	st := NewStand(s, 173, -60)
	st.Reset(false, false)

	_, err := st.Update()
	require.NoError(t, err)
	first := append([]int(nil), st.Moving()...)
	assert.Equal(t, []int{0, 1, 2}, first)

	// The second group doesn't start until the first one has landed.
	for len(st.Moving()) > 0 && st.Moving()[0] == first[0] {
		for _, i := range []int{3, 4, 5} {
			assert.Equal(t, DefaultSleepPose, s.Position(i))
		}

		_, err := st.Update()
		require.NoError(t, err)
	}

	assert.Equal(t, []int{3, 4, 5}, st.Moving())
	for _, i := range first {
		assert.Equal(t, st.End(), s.Position(i))
	}
}

func TestStandPicksHighestLegs(t *testing.T) {
	s, _ := newSolver()
	placeAll(s, math3d.Vector3{X: 150, Y: 0, Z: -60})
	s.SetPosition(4, math3d.Vector3{X: 150, Y: 0, Z: 0})
	s.SetPosition(1, math3d.Vector3{X: 150, Y: 0, Z: -10})
	s.SetPosition(2, math3d.Vector3{X: 150, Y: 0, Z: -20})

	st := NewStand(s, 173, -60)
	st.Reset(false, false)

	_, err := st.Update()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1, 2}, st.Moving())
}

func TestStandSkipsLegsAlreadyStanding(t *testing.T) {
	s, _ := newSolver()
	placeAll(s, math3d.Vector3{X: 173, Y: 0, Z: -60})
	s.SetPosition(5, math3d.Vector3{X: 150, Y: 0, Z: -40})

	st := NewStand(s, 173, -60)
	st.Reset(false, false)

	_, err := st.Update()
	require.NoError(t, err)
	assert.Equal(t, []int{5}, st.Moving())
}

func TestStandAllAtOnce(t *testing.T) {
	s, r := newSolver()
	placeAll(s, DefaultSleepPose)

	st := NewStand(s, 173, -60)
	st.Reset(true, false)

	r.Reset()
	done, err := st.Update()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Len(t, movedLegs(r), 6)

	ticks := 1
	for !done {
		done, err = st.Update()
		require.NoError(t, err)
		ticks++
		require.Less(t, ticks, 1000)
	}

	assert.Equal(t, 51, ticks)
}

func TestStandLiftsFeet(t *testing.T) {
	peak := func(highLift bool) float64 {
		s, _ := newSolver()
		placeAll(s, DefaultSleepPose)

		st := NewStand(s, 173, -60)
		st.Reset(true, highLift)

		max := -1000.0
		for done := false; !done; {
			var err error
			done, err = st.Update()
			require.NoError(t, err)

			if z := s.Position(0).Z; z > max {
				max = z
			}
		}

		return max
	}

	low := peak(false)
	high := peak(true)

	// The feet would drag, so they're lifted at least a bit.
	assert.Greater(t, low, DefaultSleepPose.Z+20)
	assert.Greater(t, high, low+30)
}

func TestStandFollowsHeight(t *testing.T) {
	s, _ := newSolver()
	placeAll(s, math3d.Vector3{X: 173, Y: 0, Z: -60})

	st := NewStand(s, 173, -60)
	st.Reset(true, false)

	for done := false; !done; {
		var err error
		done, err = st.Update()
		require.NoError(t, err)
	}

	st.SetHeight(-80)
	done, err := st.Update()
	require.NoError(t, err)
	assert.True(t, done)

	for i := 0; i < kinematics.NumLegs; i++ {
		assert.Equal(t, -80.0, s.Position(i).Z)
	}
}
