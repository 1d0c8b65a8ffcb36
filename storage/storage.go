package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adammck/hexwalk/kinematics"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "storage",
})

// document is the layout of the offsets file. Trims are grouped by leg, so the
// file is easy to edit by hand.
type document struct {
	Offsets [][]float64 `yaml:"offsets"`
}

// File keeps the calibration offsets in a YAML file.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// LoadOffsets reads the offsets, flattened into a single list. A missing file
// isn't an error; there are just no offsets yet.
func (f *File) LoadOffsets() ([]float64, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		log.Infof("no offsets at %s", f.Path)
		return make([]float64, kinematics.NumOffsets), nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w (while reading offsets)", err)
	}

	var doc document
	err = yaml.Unmarshal(b, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w (while parsing %s)", err, f.Path)
	}

	var out []float64
	for _, leg := range doc.Offsets {
		out = append(out, leg...)
	}

	return out, nil
}

// SaveOffsets writes the offsets to a temporary file, then moves it into
// place, so a crash never leaves half a file.
func (f *File) SaveOffsets(o kinematics.Offsets) error {
	doc := document{}
	for leg := 0; leg < kinematics.NumLegs; leg++ {
		i := leg * kinematics.JointsPerLeg
		doc.Offsets = append(doc.Offsets, append([]float64(nil), o[i:i+kinematics.JointsPerLeg]...))
	}

	b, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".offsets-*")
	if err != nil {
		return fmt.Errorf("%w (while saving offsets)", err)
	}

	_, err = tmp.Write(b)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w (while saving offsets)", err)
	}

	err = os.Rename(tmp.Name(), f.Path)
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w (while saving offsets)", err)
	}

	return nil
}
