package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adammck/hexwalk/components/legs"
	"github.com/adammck/hexwalk/gait"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/math3d"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Driver selects the servo hardware.
type Driver string

const (
	DriverDynamixel Driver = "dynamixel"
	DriverPCA9685   Driver = "pca9685"
	DriverFake      Driver = "fake"
)

// Hardware says where everything is plugged in.
type Hardware struct {
	Driver Driver `yaml:"driver"`

	// Dynamixel bus, and the base ID of each leg. The joints are base+1, base+2,
	// and base+3.
	Port      string                  `yaml:"port"`
	ServoBase [kinematics.NumLegs]int `yaml:"servo_base"`

	// PWM boards.
	I2C     string  `yaml:"i2c"`
	PCA9685 []uint8 `yaml:"pca9685"`

	// Gamepad event device. Empty to run without one.
	Pad string `yaml:"pad"`

	// Where the calibration offsets are kept.
	Offsets string `yaml:"offsets"`

	// Seconds between supply voltage checks. Dynamixel only.
	VoltageInterval float64 `yaml:"voltage_interval"`
	MinVoltage      float64 `yaml:"min_voltage"`
}

// Config holds every tunable of the robot. Distances are in mm, angles in
// degrees.
type Config struct {
	Geometry   kinematics.Geometry `yaml:"geometry"`
	BaseOffset math3d.Vector3      `yaml:"base_offset"`
	Gait       gait.Params         `yaml:"gait"`

	// Ticks per second.
	Rate int `yaml:"rate"`

	AttackSpeed int    `yaml:"attack_speed"`
	AttackKind  string `yaml:"attack_kind"`
	StrikeLeg   int    `yaml:"strike_leg"`

	SleepPose math3d.Vector3 `yaml:"sleep_pose"`

	// Derived from the geometry if not set.
	CalibrationPose *math3d.Vector3 `yaml:"calibration_pose"`

	HeightRange float64 `yaml:"height_range"`
	LogLevel    string  `yaml:"log_level"`

	Hardware Hardware `yaml:"hardware"`
}

func Default() Config {
	return Config{
		Geometry:    kinematics.DefaultGeometry,
		BaseOffset:  kinematics.BaseOffset,
		Gait:        gait.DefaultParams(),
		Rate:        100,
		AttackSpeed: 25,
		AttackKind:  legs.Slam.String(),
		StrikeLeg:   2,
		SleepPose:   legs.DefaultSleepPose,
		HeightRange: 30,
		LogLevel:    "info",
		Hardware: Hardware{
			Driver:          DriverDynamixel,
			Port:            "/dev/ttyACM0",
			ServoBase:       [kinematics.NumLegs]int{40, 50, 60, 10, 20, 30},
			I2C:             "/dev/i2c-1",
			PCA9685:         []uint8{0x40, 0x41},
			Pad:             "/dev/input/event0",
			Offsets:         "offsets.yaml",
			VoltageInterval: 5,
			MinVoltage:      9.6,
		},
	}
}

// Load reads the YAML file at path over the defaults, so it only needs to
// contain what differs.
func Load(path string) (Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("%w (while reading config)", err)
	}

	err = yaml.Unmarshal(b, &c)
	if err != nil {
		return c, fmt.Errorf("%w (while parsing %s)", err, path)
	}

	return c, c.Validate()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Geometry.Coxa <= 0 || c.Geometry.Femur <= 0 || c.Geometry.Tibia <= 0 {
		return fmt.Errorf("config: link lengths must be positive: %s", c.Geometry)
	}

	if c.Rate <= 0 {
		return errors.New("config: rate must be positive")
	}

	if c.Gait.CycleLength <= 0 {
		return errors.New("config: gait cycle length must be positive")
	}

	if c.StrikeLeg < 0 || c.StrikeLeg >= kinematics.NumLegs {
		return fmt.Errorf("config: no such strike leg: %d", c.StrikeLeg)
	}

	if _, err := c.Attack(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.Hardware.Driver {
	case DriverDynamixel, DriverPCA9685, DriverFake:
	default:
		return fmt.Errorf("config: unknown driver: %q", c.Hardware.Driver)
	}

	return nil
}

// Attack returns the configured attack.
func (c *Config) Attack() (legs.AttackKind, error) {
	for _, k := range []legs.AttackKind{legs.Slam, legs.QuickStrike} {
		if c.AttackKind == k.String() {
			return k, nil
		}
	}

	return 0, fmt.Errorf("config: unknown attack: %q", c.AttackKind)
}

// Level returns the log level, or info if it's invalid.
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return l
}

// Interval returns the time between ticks.
func (c *Config) Interval() time.Duration {
	return time.Second / time.Duration(c.Rate)
}

// Ticks converts a number of seconds into ticks.
func (c *Config) Ticks(seconds float64) uint64 {
	return uint64(seconds * float64(c.Rate))
}

// Options returns the options for the legs component.
func (c *Config) Options() legs.Options {
	o := legs.DefaultOptions(c.Geometry)
	o.AttackSpeed = c.AttackSpeed
	o.StrikeLeg = c.StrikeLeg
	o.SleepPose = c.SleepPose
	o.HeightRange = c.HeightRange

	if k, err := c.Attack(); err == nil {
		o.AttackKind = k
	}

	if c.CalibrationPose != nil {
		o.CalibrationPose = *c.CalibrationPose
	}

	return o
}

// ServoIDs returns the Dynamixel ID of every joint.
func (c *Config) ServoIDs() [kinematics.NumLegs][kinematics.JointsPerLeg]int {
	var out [kinematics.NumLegs][kinematics.JointsPerLeg]int

	for leg, base := range c.Hardware.ServoBase {
		for j := range out[leg] {
			out[leg][j] = base + j + 1
		}
	}

	return out
}
