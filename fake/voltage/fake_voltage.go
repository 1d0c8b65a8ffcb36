package voltage

// Supply reports a fixed voltage, which tests can change.
type Supply struct {
	V     float64
	Reads int
	Err   error
}

func New(v float64) *Supply {
	return &Supply{V: v}
}

func (s *Supply) Voltage() (float64, error) {
	s.Reads++
	return s.V, s.Err
}
