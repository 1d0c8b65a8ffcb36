package controller

import (
	"time"

	"github.com/adammck/hexwalk"
	"github.com/adammck/hexwalk/gait"
	"github.com/adammck/hexwalk/math3d"
	"github.com/adammck/hexwalk/utils"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "controller",
})

const (

	// Rate at which the smoothed sticks follow the real ones.
	smoothing = 0.1

	// Change in the speed slider per press of the dpad.
	speedStep = 10.0

	numGaits = len(gait.Profiles)
)

// Controller turns the state of a gamepad into the input snapshot read by the
// other components. It must be added before them.
type Controller struct {
	hex *hexapod.Hexapod
	src Source

	translation math3d.Vector2
	rotation    float64
	height      float64

	speed     float64
	gait      int
	calibrate bool
	sleep     bool
	connected bool

	up, down, triangle, circle, square, cross, start Latch
}

func New(hex *hexapod.Hexapod, src Source) *Controller {
	return &Controller{
		hex:   hex,
		src:   src,
		speed: hexapod.Neutral().Speed,
	}
}

func (c *Controller) Boot() error {
	log.Info("starting gamepad")
	go c.src.Run()
	return nil
}

func (c *Controller) Tick(now time.Time, state *hexapod.State) error {
	pad, ok := c.src.Pad()

	if ok != c.connected {
		log.WithField("connected", ok).Info("gamepad connection changed")
		c.connected = ok
	}

	// Without a pad, drop straight to neutral rather than decaying from the
	// last values. Smoothing resumes from zero on reconnect.
	if !ok {
		pad = Pad{}
		c.translation = math3d.Vector2{}
		c.rotation = 0
		c.height = 0
	} else {
		target := math3d.Vector2{X: pad.LeftX, Y: pad.LeftY}
		c.translation = math3d.Lerp(c.translation, target, smoothing)
		c.rotation = math3d.LerpFloat(c.rotation, pad.RightX, smoothing)
		c.height = math3d.LerpFloat(c.height, pad.RightY, smoothing)
	}

	if c.up.Run(pad.Up) {
		c.speed = utils.Constrain(c.speed+speedStep, 0, 100)
		log.Infof("speed=%.0f", c.speed)
	}

	if c.down.Run(pad.Down) {
		c.speed = utils.Constrain(c.speed-speedStep, 0, 100)
		log.Infof("speed=%.0f", c.speed)
	}

	if c.triangle.Run(pad.Triangle) {
		c.gait = (c.gait + 1) % numGaits
		log.Infof("gait=%s", gait.Kind(c.gait))
	}

	if c.square.Run(pad.Square) {
		c.calibrate = !c.calibrate
		log.Infof("calibrate=%v", c.calibrate)
	}

	if c.cross.Run(pad.Cross) {
		c.sleep = !c.sleep
		log.Infof("sleep=%v", c.sleep)
	}

	attack := c.circle.Run(pad.Circle)

	// At any time, pressing start shuts down the hex.
	if c.start.Run(pad.Start) {
		log.Info("pressed START, shutting down")
		c.hex.Shutdown()
	}

	state.Input = hexapod.Input{
		Translation: c.translation,
		Rotation:    c.rotation,
		Height:      c.height,
		Speed:       c.speed,
		Gait:        c.gait,
		Calibrate:   c.calibrate,
		Sleep:       c.sleep,
		Attack:      attack,
		Connected:   ok,
	}

	return nil
}
