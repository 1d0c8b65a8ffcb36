package legs

import (
	"errors"
	"testing"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleepDetachesOnTickAfterArrival(t *testing.T) {
	s, r := newSolver()
	placeAll(s, DefaultSleepPose.Add(math3d.Vector3{X: 0.5}))
	sl := NewSleep(s, DefaultSleepPose)

	// Close enough to snap onto the pose.
	asleep, err := sl.Update()
	require.NoError(t, err)
	assert.False(t, asleep)
	assert.Equal(t, 0, r.Detaches)
	for i := 0; i < kinematics.NumLegs; i++ {
		assert.Equal(t, DefaultSleepPose, s.Position(i))
	}

	asleep, err = sl.Update()
	require.NoError(t, err)
	assert.True(t, asleep)
	assert.Equal(t, 1, r.Detaches)
	assert.True(t, sl.Sleeping())
	assert.False(t, s.Attached())

	// Stays asleep without detaching again.
	asleep, err = sl.Update()
	require.NoError(t, err)
	assert.True(t, asleep)
	assert.Equal(t, 1, r.Detaches)
}

func TestSleepAlreadyThere(t *testing.T) {
	s, r := newSolver()
	placeAll(s, DefaultSleepPose)
	sl := NewSleep(s, DefaultSleepPose)

	asleep, err := sl.Update()
	require.NoError(t, err)
	assert.True(t, asleep)
	assert.Equal(t, 1, r.Detaches)
	assert.Empty(t, r.Moves)
}

func TestSleepConverges(t *testing.T) {
	s, _ := newSolver()
	placeAll(s, math3d.Vector3{X: 173, Y: 20, Z: -80})
	sl := NewSleep(s, DefaultSleepPose)

	prev := s.Position(0).Distance(DefaultSleepPose)
	for i := 0; !sl.Sleeping(); i++ {
		_, err := sl.Update()
		require.NoError(t, err)
		require.Less(t, i, 1000)

		d := s.Position(0).Distance(DefaultSleepPose)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}

	assert.Equal(t, DefaultSleepPose, s.Position(0))
}

func TestWakeUp(t *testing.T) {
	s, r := newSolver()
	placeAll(s, DefaultSleepPose)
	sl := NewSleep(s, DefaultSleepPose)

	// Already awake.
	woke, err := sl.WakeUp()
	require.NoError(t, err)
	assert.False(t, woke)
	assert.Equal(t, 0, r.Attaches)

	_, err = sl.Update()
	require.NoError(t, err)
	require.True(t, sl.Sleeping())

	woke, err = sl.WakeUp()
	require.NoError(t, err)
	assert.True(t, woke)
	assert.Equal(t, 1, r.Attaches)
	assert.True(t, s.Attached())
	assert.False(t, sl.Sleeping())

	// Twice is a no-op.
	woke, err = sl.WakeUp()
	require.NoError(t, err)
	assert.False(t, woke)
	assert.Equal(t, 1, r.Attaches)
}

func TestSleepDetachError(t *testing.T) {
	s, r := newSolver()
	placeAll(s, DefaultSleepPose)
	sl := NewSleep(s, DefaultSleepPose)
	r.Err = errors.New("bus fault")

	asleep, err := sl.Update()
	assert.ErrorIs(t, err, r.Err)
	assert.False(t, asleep)
	assert.False(t, sl.Sleeping())

	// Retried on the next tick.
	r.Err = nil
	asleep, err = sl.Update()
	require.NoError(t, err)
	assert.True(t, asleep)
}
