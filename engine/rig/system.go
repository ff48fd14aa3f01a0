package rig

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
)

// System owns a set of named rigs and advances all of them once per tick.
// Raw input only reaches the active rig; events sent by name reach any rig.
type System interface {
	// Add registers a rig. The first rig added becomes the active rig.
	//
	// Parameters:
	//   - r: the rig to add
	//
	// Returns:
	//   - error: error if a rig with the same name is already registered
	Add(r Rig) error

	// Remove unregisters a rig by name. Removing the active rig leaves no rig active.
	//
	// Parameters:
	//   - name: the rig name
	//
	// Returns:
	//   - bool: true if a rig was removed
	Remove(name string) bool

	// Rig looks up a rig by name.
	//
	// Parameters:
	//   - name: the rig name
	//
	// Returns:
	//   - Rig: the rig, or nil
	//   - bool: true if found
	Rig(name string) (Rig, bool)

	// Rigs returns every registered rig sorted by name.
	//
	// Returns:
	//   - []Rig: the registered rigs
	Rigs() []Rig

	// SetActive selects the rig that receives raw input. An empty name deactivates input.
	//
	// Parameters:
	//   - name: the rig name
	//
	// Returns:
	//   - error: error if no rig has that name
	SetActive(name string) error

	// Active returns the rig receiving raw input.
	//
	// Returns:
	//   - Rig: the active rig, or nil
	//   - bool: true if a rig is active
	Active() (Rig, bool)

	// Send queues events on a rig by name. Unknown names are ignored.
	//
	// Parameters:
	//   - name: the rig name
	//   - events: events to queue
	//
	// Returns:
	//   - bool: true if the rig exists
	Send(name string, events ...controller.Event) bool

	// Tick maps raw input onto the active rig when the behavior allows it, then
	// updates every rig concurrently and waits for all of them.
	//
	// Parameters:
	//   - frame: raw input observed during the tick
	//   - dt: elapsed time in seconds
	//   - behavior: whether default input mapping runs this tick
	//
	// Returns:
	//   - map[string]look.Transform: the smoothed pose of each rig by name
	Tick(frame input.Frame, dt float32, behavior input.Behavior) map[string]look.Transform
}

// system is the implementation of the System interface.
type system struct {
	mu *sync.Mutex

	rigs   map[string]Rig
	active string

	// pool runs one update task per rig per tick; Tick joins them with a WaitGroup.
	pool    worker.DynamicWorkerPool
	workers int
	taskID  int
}

var _ System = &system{}

// NewSystem creates an empty rig system.
//
// Parameters:
//   - options: functional options to configure the system
//
// Returns:
//   - System: the newly created system
func NewSystem(options ...SystemBuilderOption) System {
	s := &system{
		mu:      &sync.Mutex{},
		rigs:    make(map[string]Rig),
		workers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *system) Add(r Rig) error {
	if r == nil {
		return fmt.Errorf("rig: nil rig")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rigs[r.Name()]; ok {
		return fmt.Errorf("rig: duplicate rig name %q", r.Name())
	}
	s.rigs[r.Name()] = r
	if s.active == "" {
		s.active = r.Name()
	}
	return nil
}

func (s *system) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rigs[name]; !ok {
		return false
	}
	delete(s.rigs, name)
	if s.active == name {
		s.active = ""
	}
	return true
}

func (s *system) Rig(name string) (Rig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rigs[name]
	return r, ok
}

func (s *system) Rigs() []Rig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedRigs()
}

func (s *system) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != "" {
		if _, ok := s.rigs[name]; !ok {
			return fmt.Errorf("rig: no rig named %q", name)
		}
	}
	s.active = name
	return nil
}

func (s *system) Active() (Rig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rigs[s.active]
	return r, ok
}

func (s *system) Send(name string, events ...controller.Event) bool {
	r, ok := s.Rig(name)
	if !ok {
		return false
	}
	r.Send(events...)
	return true
}

func (s *system) Tick(frame input.Frame, dt float32, behavior input.Behavior) map[string]look.Transform {
	s.mu.Lock()
	rigs := s.sortedRigs()
	active := s.rigs[s.active]
	s.mu.Unlock()

	if active != nil && behavior.ShouldConsume() {
		active.MapInput(frame)
	}

	poses := make([]look.Transform, len(rigs))
	var wg sync.WaitGroup
	for i, r := range rigs {
		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: s.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				poses[i] = r.Update(dt)
				return nil, nil
			},
		})
	}
	wg.Wait()

	out := make(map[string]look.Transform, len(rigs))
	for i, r := range rigs {
		out[r.Name()] = poses[i]
	}
	return out
}

func (s *system) nextTaskID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskID++
	return s.taskID
}

// sortedRigs must be called with s.mu held.
func (s *system) sortedRigs() []Rig {
	rigs := make([]Rig, 0, len(s.rigs))
	for _, r := range s.rigs {
		rigs = append(rigs, r)
	}
	slices.SortFunc(rigs, func(a, b Rig) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return rigs
}
