package rig

// SystemBuilderOption is a function that configures a System.
type SystemBuilderOption func(*system)

// WithWorkers sets the number of worker goroutines used to update rigs.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SystemBuilderOption: option function to apply
func WithWorkers(n int) SystemBuilderOption {
	return func(s *system) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithRigs registers rigs at construction. The first becomes the active rig.
// Rigs with duplicate names are skipped.
//
// Parameters:
//   - rigs: the rigs to add
//
// Returns:
//   - SystemBuilderOption: option function to apply
func WithRigs(rigs ...Rig) SystemBuilderOption {
	return func(s *system) {
		for _, r := range rigs {
			if r == nil {
				continue
			}
			if _, ok := s.rigs[r.Name()]; ok {
				continue
			}
			s.rigs[r.Name()] = r
			if s.active == "" {
				s.active = r.Name()
			}
		}
	}
}
