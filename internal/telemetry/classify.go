package telemetry

// DirtyThreshold is the concentration (ppm) at or above which air is
// classified as dirty. The boundary is inclusive.
const DirtyThreshold = 100.0

// Quality is the two-state air classification.
type Quality int

const (
	Clean Quality = iota
	Dirty
)

// String returns a human-readable label.
func (q Quality) String() string {
	switch q {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Classify returns Dirty when ppm >= DirtyThreshold, Clean otherwise.
func Classify(ppm float64) Quality {
	if ppm >= DirtyThreshold {
		return Dirty
	}
	return Clean
}

// Status is the realtime verdict shown for the latest reading.
type Status int

const (
	StatusNoData Status = iota
	StatusClean
	StatusDirty
)

// String returns the label shown next to the live value.
func (s Status) String() string {
	switch s {
	case StatusNoData:
		return "No sensor data yet"
	case StatusClean:
		return "Air Clean"
	case StatusDirty:
		return "Air Dirty"
	default:
		return "unknown"
	}
}

// StatusOf derives the realtime status from the last reading. ok is false when
// there is no reading, which yields StatusNoData rather than a zero value.
func StatusOf(r Reading, ok bool) Status {
	if !ok {
		return StatusNoData
	}
	if Classify(r.Value()) == Dirty {
		return StatusDirty
	}
	return StatusClean
}
