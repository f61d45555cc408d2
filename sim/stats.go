package sim

// Stats accumulates per-frame observations from a running simulation
type Stats struct {
	Frames     int
	Bounces    int
	Resets     int
	MaxSides   int
	MaxSpeed   float64
	Iterations int

	// Frames in which the sub-step cap was reached
	CappedFrames int

	// Side count and speed per frame
	SidesHistory []float64
	SpeedHistory []float64

	maxIterations int
}

// NewStats creates an empty recorder for a simulation using config
func NewStats(config Config) *Stats {
	return &Stats{
		maxIterations: config.MaxIterations,
	}
}

// Record adds one frame. Its signature matches FrameFunc.
func (s *Stats) Record(snapshot Snapshot, report StepReport) {
	s.Frames++
	s.Bounces += report.Collisions
	s.Iterations += report.Iterations
	if report.Reset {
		s.Resets++
	}
	if report.Iterations >= s.maxIterations {
		s.CappedFrames++
	}

	speed := snapshot.Speed()
	if snapshot.Sides > s.MaxSides {
		s.MaxSides = snapshot.Sides
	}
	if speed > s.MaxSpeed {
		s.MaxSpeed = speed
	}

	s.SidesHistory = append(s.SidesHistory, float64(snapshot.Sides))
	s.SpeedHistory = append(s.SpeedHistory, speed)
}

// Downsample reduces data to at most width points by averaging buckets
func Downsample(data []float64, width int) []float64 {
	if width <= 0 || len(data) <= width {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}

	out := make([]float64, width)
	for i := range out {
		lo := i * len(data) / width
		hi := (i + 1) * len(data) / width
		sum := 0.0
		for _, v := range data[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
