package legs

import (
	"errors"
	"testing"
	"time"

	"github.com/adammck/hexwalk"
	fakeservos "github.com/adammck/hexwalk/fake/servos"
	fakestorage "github.com/adammck/hexwalk/fake/storage"
	"github.com/adammck/hexwalk/gait"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	legs   *Legs
	solver *kinematics.Solver
	rec    *fakeservos.Recorder
	store  *fakestorage.Memory
	engine *gait.Engine
	state  *hexapod.State
}

func newRig(t *testing.T, offsets ...float64) *rig {
	s, r := newSolver()
	m := fakestorage.New(offsets...)
	e := gait.NewEngine(gait.DefaultParams())

	l := New(s, e, m, DefaultOptions(kinematics.DefaultGeometry))
	require.NoError(t, l.Boot())

	return &rig{
		legs:   l,
		solver: s,
		rec:    r,
		store:  m,
		engine: e,
		state:  &hexapod.State{Input: hexapod.Neutral()},
	}
}

func (r *rig) tick(t *testing.T) {
	r.state.Ticks++
	require.NoError(t, r.legs.Tick(time.Time{}, r.state))
}

// tickUntil ticks until the function returns true, or fails after n ticks.
func (r *rig) tickUntil(t *testing.T, n int, f func() bool) {
	for i := 0; !f(); i++ {
		require.Less(t, i, n)
		r.tick(t)
	}
}

func (r *rig) standUp(t *testing.T) {
	r.tickUntil(t, 500, func() bool {
		return r.legs.State == sStand && r.legs.stand.Done()
	})
}

func TestBoot(t *testing.T) {
	offsets := make([]float64, kinematics.NumOffsets)
	offsets[3] = 2.5

	r := newRig(t, offsets...)
	assert.Equal(t, sInitialize, r.legs.State)
	assert.Equal(t, 2.5, r.solver.RawOffsets()[3])

	for i := 0; i < kinematics.NumLegs; i++ {
		assert.Equal(t, DefaultSleepPose, r.solver.Position(i))
	}
}

func TestBootWithoutOffsets(t *testing.T) {
	s, _ := newSolver()
	m := fakestorage.New()
	m.Err = errors.New("no such file")

	l := New(s, gait.NewEngine(gait.DefaultParams()), m, DefaultOptions(kinematics.DefaultGeometry))
	require.NoError(t, l.Boot())
	assert.Equal(t, kinematics.Offsets{}, s.RawOffsets())
}

func TestStandsUpFromBoot(t *testing.T) {
	r := newRig(t)

	r.tick(t)
	assert.Equal(t, sStand, r.legs.State)

	// Coming up off the ground, so every leg moves at once.
	r.rec.Reset()
	r.tick(t)
	assert.Len(t, movedLegs(r.rec), kinematics.NumLegs)

	r.standUp(t)
	for i := 0; i < kinematics.NumLegs; i++ {
		assert.InDelta(t, 0, r.solver.Position(i).Distance(standing), 1e-6)
	}
}

func TestWalkAndStop(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	// Below the threshold, nothing happens.
	r.state.Input.Translation = math3d.Vector2{Y: 0.08}
	r.tick(t)
	assert.Equal(t, sStand, r.legs.State)

	r.state.Input.Translation = math3d.Vector2{Y: 0.5}
	r.tick(t)
	assert.Equal(t, sWalk, r.legs.State)

	for i := 0; i < 30; i++ {
		r.tick(t)
	}

	// Between the thresholds, it keeps walking.
	r.state.Input.Translation = math3d.Vector2{Y: 0.08}
	r.tick(t)
	assert.Equal(t, sWalk, r.legs.State)

	r.state.Input.Translation = math3d.Vector2{}
	r.tick(t)
	assert.Equal(t, sStand, r.legs.State)

	// Back from walking, the legs move in two groups.
	assert.False(t, r.legs.stand.allAtOnce)
}

func TestRotationStartsWalking(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	r.state.Input.Rotation = -0.3
	r.tick(t)
	assert.Equal(t, sWalk, r.legs.State)
}

func TestGaitAndSpeedFollowInput(t *testing.T) {
	r := newRig(t)
	r.state.Input.Gait = int(gait.Wave)
	r.state.Input.Speed = 90
	r.tick(t)

	assert.Equal(t, gait.Wave, r.engine.Profile().Kind)
	assert.InDelta(t, 1.0, r.engine.GlobalSpeed(), 1e-9)

	r.state.Input.Gait = 17
	err := r.legs.Tick(time.Time{}, r.state)
	assert.ErrorIs(t, err, gait.ErrUnknownGait)
	assert.Equal(t, gait.Wave, r.engine.Profile().Kind)
}

func TestUnknownStateKeepsOtherErrors(t *testing.T) {
	r := newRig(t)
	r.legs.State = State("Bogus")
	r.state.Input.Gait = 17

	err := r.legs.Tick(time.Time{}, r.state)
	require.Error(t, err)
	assert.ErrorIs(t, err, gait.ErrUnknownGait)
	assert.Contains(t, err.Error(), `unknown state: "Bogus"`)
}

func TestHeightIsSmoothed(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	r.state.Input.Height = 1
	r.tick(t)
	assert.InDelta(t, -60+(30*heightRate), r.legs.height, 1e-9)

	for i := 0; i < 300; i++ {
		r.tick(t)
	}

	assert.InDelta(t, -30, r.legs.height, 0.1)
	assert.InDelta(t, -30, r.solver.Position(0).Z, 0.1)
}

func TestSleepAndWake(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	r.state.Input.Sleep = true
	r.tick(t)
	assert.Equal(t, sSleep, r.legs.State)

	r.tickUntil(t, 1000, r.legs.Sleeping)
	assert.Equal(t, 1, r.rec.Detaches)
	assert.False(t, r.rec.Attached)

	r.state.Input.Sleep = false
	r.tick(t)
	assert.Equal(t, sStand, r.legs.State)
	assert.Equal(t, 1, r.rec.Attaches)
	assert.True(t, r.legs.stand.allAtOnce)
	assert.True(t, r.legs.stand.highLift)
}

func TestShutdownSleeps(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	r.state.Shutdown = true
	r.tick(t)
	assert.Equal(t, sSleep, r.legs.State)

	r.tickUntil(t, 1000, r.legs.Sleeping)

	// Never wakes up again.
	for i := 0; i < 10; i++ {
		r.tick(t)
	}

	assert.True(t, r.legs.Sleeping())
	assert.Equal(t, 0, r.rec.Attaches)
}

func TestCalibrateSavesOnExit(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	r.state.Input.Calibrate = true
	r.tick(t)
	assert.Equal(t, sCalibrate, r.legs.State)

	r.tickUntil(t, 1000, r.legs.calibrate.Lifted)
	require.NoError(t, r.legs.Calibrator().AdjustOffset(0, kinematics.Femur, 3))
	assert.Equal(t, 0, r.store.Saves)

	r.state.Input.Calibrate = false
	r.tick(t)
	assert.Equal(t, sStand, r.legs.State)
	assert.Equal(t, 1, r.store.Saves)
	assert.Equal(t, 3.0, r.store.Offsets[1])
	assert.True(t, r.legs.stand.allAtOnce)
}

func TestAttackIgnoresInput(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	slams := 0
	r.legs.OnSlam(func() { slams++ })

	r.state.Input.Attack = true
	r.tick(t)
	assert.Equal(t, sAttack, r.legs.State)
	r.state.Input.Attack = false

	// Sleeping has to wait until the attack is over.
	r.state.Input.Sleep = true
	for i := 0; i < 10; i++ {
		_ = r.legs.Tick(time.Time{}, r.state)
		assert.Equal(t, sAttack, r.legs.State)
	}

	for i := 0; r.legs.State == sAttack; i++ {
		require.Less(t, i, 1000)
		_ = r.legs.Tick(time.Time{}, r.state)
	}

	assert.Equal(t, 1, slams)
	assert.Equal(t, sStand, r.legs.State)

	_ = r.legs.Tick(time.Time{}, r.state)
	assert.Equal(t, sSleep, r.legs.State)
}

func TestAttackFromWalk(t *testing.T) {
	r := newRig(t)
	r.standUp(t)

	r.state.Input.Translation = math3d.Vector2{X: 0.5}
	r.tick(t)
	require.Equal(t, sWalk, r.legs.State)

	r.state.Input.Attack = true
	r.tick(t)
	assert.Equal(t, sAttack, r.legs.State)
}
