package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adammck/dynamixel/network"
	"github.com/adammck/hexwalk"
	"github.com/adammck/hexwalk/components/controller"
	"github.com/adammck/hexwalk/components/legs"
	"github.com/adammck/hexwalk/components/voltage"
	"github.com/adammck/hexwalk/config"
	fakeservos "github.com/adammck/hexwalk/fake/servos"
	"github.com/adammck/hexwalk/gait"
	"github.com/adammck/hexwalk/kinematics"
	"github.com/adammck/hexwalk/servos"
	"github.com/adammck/hexwalk/storage"
	"github.com/jacobsa/go-serial/serial"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

var (
	configPath   = flag.String("config", "", "path to a YAML config file")
	driver       = flag.String("driver", "", "servo driver: dynamixel, pca9685, or fake")
	portName     = flag.String("port", "", "the serial port path")
	i2cPath      = flag.String("i2c", "", "the i2c device path")
	padPath      = flag.String("pad", "", "the gamepad event device, or none")
	offsetsPath  = flag.String("offsets", "", "the calibration offsets file")
	printOffsets = flag.Bool("print-offsets", false, "print the calibration offsets and exit")
	debug        = flag.Bool("debug", false, "verbose logging, and show serial traffic")
)

// Longest to wait for the legs to fold up after a shutdown is requested.
const shutdownTimeout = 10 * time.Second

func loadConfig() config.Config {
	cfg := config.Default()

	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("error loading config: %s", err)
		}
	}

	if *driver != "" {
		cfg.Hardware.Driver = config.Driver(*driver)
	}

	if *portName != "" {
		cfg.Hardware.Port = *portName
	}

	if *i2cPath != "" {
		cfg.Hardware.I2C = *i2cPath
	}

	if *padPath != "" {
		cfg.Hardware.Pad = *padPath
	}

	if *offsetsPath != "" {
		cfg.Hardware.Offsets = *offsetsPath
	}

	if *debug {
		cfg.LogLevel = "debug"
	}

	err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

// openActuator opens the servo hardware. Any components it returns must be
// ticked after the legs.
func openActuator(cfg config.Config, h *hexapod.Hexapod) (kinematics.Actuator, []hexapod.Component) {
	switch cfg.Hardware.Driver {
	case config.DriverDynamixel:
		sOpts := serial.OpenOptions{
			PortName:              cfg.Hardware.Port,
			BaudRate:              1000000,
			DataBits:              8,
			StopBits:              1,
			MinimumReadSize:       0,
			InterCharacterTimeout: 100,
		}

		log.Infof("opening serial port %s", cfg.Hardware.Port)
		port, err := serial.Open(sOpts)
		if err != nil {
			log.Fatalf("error opening serial port: %s", err)
		}

		n := network.New(port)
		n.Debug = *debug
		n.Flush()

		d, err := servos.OpenDynamixel(n, cfg.ServoIDs())
		if err != nil {
			log.Fatalf("error opening servos: %s", err)
		}

		vc := voltage.New(h, d, cfg.Ticks(cfg.Hardware.VoltageInterval))
		vc.Minimum = cfg.Hardware.MinVoltage
		return d, []hexapod.Component{d, vc}

	case config.DriverPCA9685:
		log.Infof("opening i2c bus %s", cfg.Hardware.I2C)
		bus, err := servos.OpenI2C(cfg.Hardware.I2C)
		if err != nil {
			log.Fatalf("error opening i2c bus: %s", err)
		}

		p, err := servos.OpenPCA9685(bus, cfg.Hardware.PCA9685, servos.DefaultChannels())
		if err != nil {
			log.Fatalf("error opening pwm boards: %s", err)
		}

		return p, nil
	}

	log.Warn("using fake servos")
	return fakeservos.New(), nil
}

func main() {
	flag.Parse()

	cfg := loadConfig()
	logrus.SetLevel(cfg.Level())

	h := hexapod.NewHexapod()
	act, after := openActuator(cfg, h)

	solver := kinematics.NewSolver(cfg.Geometry, cfg.BaseOffset, act)
	l := legs.New(solver, gait.NewEngine(cfg.Gait), storage.NewFile(cfg.Hardware.Offsets), cfg.Options())

	if *printOffsets {
		err := l.Calibrator().LoadOffsets()
		if err != nil {
			log.Warn(err)
		}

		err = l.Calibrator().PrintOffsets(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}

		return
	}

	// The controller goes first, so the others see this tick's input.
	if cfg.Hardware.Pad != "" && cfg.Hardware.Pad != "none" {
		log.Infof("opening controller %s", cfg.Hardware.Pad)
		f, err := os.Open(cfg.Hardware.Pad)
		if err != nil {
			log.Fatalf("error opening controller: %s", err)
		}
		defer f.Close()

		h.Add(controller.New(h, controller.NewSixAxis(f)))
	}

	h.Add(l)
	for _, c := range after {
		h.Add(c)
	}

	log.Info("booting components")
	err := h.Boot()
	if err != nil {
		log.Fatalf("error while booting: %s", err)
	}

	// Catch both SIGINT (ctrl+c) and SIGTERM (kill/systemd), to allow the hexapod
	// to fold up and power down its servos before exiting.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			log.Info("caught signal, shutting down")
			h.Shutdown()
		}
	}()

	log.Infof("starting loop at %dHz", cfg.Rate)
	t := time.NewTicker(cfg.Interval())
	defer t.Stop()

	var deadline time.Time
	for now := range t.C {
		err := h.Tick(now)
		if err != nil {
			log.Warn(err)
		}

		if !h.State.Shutdown {
			continue
		}

		if deadline.IsZero() {
			deadline = now.Add(shutdownTimeout)
		}

		if l.Sleeping() {
			log.Info("asleep, exiting")
			return
		}

		if now.After(deadline) {
			log.Warn("timed out waiting for sleep, detaching")
			err := solver.Detach()
			if err != nil {
				log.Error(err)
			}

			os.Exit(2)
		}
	}
}
