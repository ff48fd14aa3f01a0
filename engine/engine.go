// Package engine runs the fixed-rate tick loop that drains window input, advances
// every camera rig and refreshes the render cameras bound to them.
package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
)

// Window is the part of window.Window the engine drives.
type Window interface {
	Input() input.Recorder
	SetResizeCallback(callback func(width, height int))
	Aspect() float32
	ProcessMessages()
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   Window
	recorder input.Recorder
	rigs     rig.System
	cameras  map[string]camera.Camera
	behavior input.Behavior

	watcher *config.Watcher

	profiler         *profiler.Profiler
	profilingEnabled bool
	lastEvents       uint64

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32, poses map[string]look.Transform)
}

// Engine is the main entry point. It owns the rig system, the input recorder and
// the render cameras, and ticks them at a fixed rate.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - Window: the window instance
	Window() Window

	// Input returns the recorder drained once per tick.
	//
	// Returns:
	//   - input.Recorder: the recorder
	Input() input.Recorder

	// Rigs returns the rig system ticked by the engine.
	//
	// Returns:
	//   - rig.System: the rig system
	Rigs() rig.System

	// AddCamera binds a render camera to a rig. The camera is refreshed from the
	// rig's smoothed pose after every tick and its aspect follows window resizes.
	//
	// Parameters:
	//   - rigName: the rig to follow
	//   - cam: the camera
	//
	// Returns:
	//   - error: error if no rig has that name
	AddCamera(rigName string, cam camera.Camera) error

	// RemoveCamera unbinds the camera following a rig.
	//
	// Parameters:
	//   - rigName: the rig name
	RemoveCamera(rigName string)

	// Camera returns the camera following a rig, or nil.
	//
	// Parameters:
	//   - rigName: the rig name
	//
	// Returns:
	//   - camera.Camera: the camera or nil
	Camera(rigName string) camera.Camera

	// InputBehavior returns the current input gating.
	//
	// Returns:
	//   - input.Behavior: the behavior
	InputBehavior() input.Behavior

	// SetInputBehavior changes the input gating from the next tick on. The engine
	// never changes it on its own after construction.
	//
	// Parameters:
	//   - b: the behavior
	SetInputBehavior(b input.Behavior)

	// LoadConfig loads a rig configuration file, applies it to the rig system and
	// adopts its input behavior.
	//
	// Parameters:
	//   - filename: path to the YAML file
	//
	// Returns:
	//   - error: error if the file cannot be loaded or applied
	LoadConfig(filename string) error

	// WatchConfig reloads a configuration file whenever it changes. Reloads are
	// applied at the start of the next tick; they update controllers and add rigs but
	// leave poses and the input behavior alone.
	//
	// Parameters:
	//   - filename: path to the YAML file
	//
	// Returns:
	//   - error: error if the watcher cannot be started
	WatchConfig(filename string) error

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers the function called after each tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds and every rig's smoothed pose
	SetTickCallback(callback func(deltaTime float32, poses map[string]look.Transform))

	// Step runs a single tick synchronously. Run calls it from the tick goroutine;
	// hosts with their own loop call it directly.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - map[string]look.Transform: every rig's smoothed pose by name
	Step(dt float32) map[string]look.Transform

	// Run starts the tick loop and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		cameras:          make(map[string]camera.Camera),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.rigs == nil {
		e.rigs = rig.NewSystem()
	}
	if e.recorder == nil {
		if e.window != nil {
			e.recorder = e.window.Input()
		} else {
			e.recorder = input.NewRecorder()
		}
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if width <= 0 || height <= 0 {
				return
			}
			e.mu.Lock()
			defer e.mu.Unlock()
			for _, c := range e.cameras {
				c.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Input() input.Recorder {
	return e.recorder
}

func (e *engine) Rigs() rig.System {
	return e.rigs
}

func (e *engine) AddCamera(rigName string, cam camera.Camera) error {
	r, ok := e.rigs.Rig(rigName)
	if !ok {
		return fmt.Errorf("engine: no rig named %q", rigName)
	}
	cam.SetSource(r)
	if e.window != nil {
		cam.SetAspect(e.window.Aspect())
	}
	cam.Update()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameras[rigName] = cam
	return nil
}

func (e *engine) RemoveCamera(rigName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.cameras, rigName)
}

func (e *engine) Camera(rigName string) camera.Camera {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cameras[rigName]
}

func (e *engine) InputBehavior() input.Behavior {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.behavior
}

func (e *engine) SetInputBehavior(b input.Behavior) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behavior = b
}

func (e *engine) LoadConfig(filename string) error {
	f, err := config.Load(filename)
	if err != nil {
		return err
	}
	if err := f.Apply(e.rigs); err != nil {
		return err
	}
	e.SetInputBehavior(f.InputBehavior)
	log.Printf("[Engine] Loaded %d rig(s) from %s", len(f.Rigs), filename)
	return nil
}

func (e *engine) WatchConfig(filename string) error {
	w, err := config.NewWatcher(filename)
	if err != nil {
		return fmt.Errorf("engine: watch %s: %w", filename, err)
	}

	e.mu.Lock()
	old := e.watcher
	e.watcher = w
	e.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// applyReloads applies pending configuration changes without blocking.
func (e *engine) applyReloads() {
	e.mu.Lock()
	w := e.watcher
	e.mu.Unlock()
	if w == nil {
		return
	}

	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			f, err := config.Load(path)
			if err != nil {
				log.Printf("[Engine] Config reload failed: %v", err)
				continue
			}
			if err := f.Apply(e.rigs); err != nil {
				log.Printf("[Engine] Config reload failed: %v", err)
				continue
			}
			log.Printf("[Engine] Reloaded %s", path)
		case err, ok := <-w.Errors:
			if ok {
				log.Printf("[Engine] Config watcher error: %v", err)
			}
		default:
			return
		}
	}
}

func (e *engine) Step(dt float32) map[string]look.Transform {
	e.applyReloads()

	frame := e.recorder.Drain()
	poses := e.rigs.Tick(frame, dt, e.InputBehavior())

	e.mu.Lock()
	for _, c := range e.cameras {
		c.Update()
	}
	callback := e.tickCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if callback != nil {
		callback(dt, poses)
	}

	if profiling && e.profiler != nil {
		var total uint64
		for _, r := range e.rigs.Rigs() {
			total += r.EventsProcessed()
		}
		e.profiler.Tick(profiler.Sample{Rigs: len(poses), Events: total - min(e.lastEvents, total)})
		e.lastEvents = total
	}
	return poses
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()

	e.mu.Lock()
	w := e.watcher
	e.watcher = nil
	e.mu.Unlock()
	if w != nil {
		_ = w.Close()
	}
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick goroutine.
func (e *engine) handle() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.wg.Add(1)
	go e.handleEngine()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit
// channel is closed. Recovers from panics and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	newRate := tickInterval(tps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if !running {
		e.engineTickRate = newRate
		return
	}

	// Replace any pending update so the newest rate wins.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32, poses map[string]look.Transform)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// tickInterval converts a rate in ticks per second to a ticker interval.
func tickInterval(tps float64) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Duration(float64(time.Second) / tps)
}
