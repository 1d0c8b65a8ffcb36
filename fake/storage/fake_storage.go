package storage

import (
	"github.com/adammck/hexwalk/kinematics"
)

// Memory is an offset store which keeps everything in memory.
type Memory struct {
	Offsets []float64
	Saves   int

	// Err, if set, is returned from every call.
	Err error
}

func New(offsets ...float64) *Memory {
	return &Memory{Offsets: offsets}
}

func (m *Memory) LoadOffsets() ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]float64, len(m.Offsets))
	copy(out, m.Offsets)
	return out, nil
}

func (m *Memory) SaveOffsets(o kinematics.Offsets) error {
	if m.Err != nil {
		return m.Err
	}

	m.Offsets = append([]float64(nil), o[:]...)
	m.Saves++
	return nil
}
