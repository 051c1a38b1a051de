package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"

	"github.com/goWinMouse/config"
	"github.com/goWinMouse/host"
	"github.com/goWinMouse/interpreter"
	"github.com/goWinMouse/keymaps"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

func setupLogging(path string) (*os.File, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// Open or create the log file
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	// Create a logger that writes to the file
	logger = log.New(logFile, "", log.LstdFlags)

	return logFile, nil
}

var debug = false

func dprint(format string, v ...interface{}) {
	if debug {
		fmt.Printf(format, v...)
		logger.Printf(format, v...)
	}
}

// Constants for event return values
const (
	MuteEvent     = 0
	PassThruEvent = 1
)

// Event type constant from linux/input-event-codes.h
const EvKey = 0x01

// Key event values
const (
	keyReleased = 0
	keyPressed  = 1
	keyRepeated = 2
)

// InputDevice represents a physical input device
type InputDevice struct {
	device       *evdev.InputDevice
	name         string
	path         string
	keyboardType int
}

// FindInputDevices locates keyboard devices whose name is in wanted
func FindInputDevices(wanted []string) ([]*InputDevice, error) {
	var devices []*InputDevice

	// Find all input devices
	devFiles, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}

	for _, path := range devFiles {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}

		matched := false
		for _, name := range wanted {
			if dev.Name == name {
				devices = append(devices, &InputDevice{
					device:       dev,
					name:         dev.Name,
					path:         path,
					keyboardType: keymaps.GetKeyboardType(dev.Name),
				})
				matched = true
				break
			}
		}
		if !matched {
			dev.File.Close()
		}
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no suitable input devices found")
	}

	return devices, nil
}

// DispatchLock serializes every dispatcher. Once stopped, events are dropped
// so nothing is registered or forwarded after the shutdown release.
type DispatchLock struct {
	sync.Mutex
	stopped bool
}

// Dispatcher feeds one device's key events to its interpreter and forwards
// pass-through keys to the virtual keyboard. All dispatchers share one lock
// so the interpreters and the registry see a single event at a time.
type Dispatcher struct {
	mu       *DispatchLock
	interp   *interpreter.Interpreter
	mapping  keymaps.KeyMapping
	keyboard host.Keyboard
	devName  string

	// codes pressed on the virtual keyboard and not yet released
	forwarded map[uint16]bool
}

func NewDispatcher(mu *DispatchLock, mapping keymaps.KeyMapping, reg interpreter.Registrar, keyboard host.Keyboard, devName string) *Dispatcher {
	return &Dispatcher{
		mu:        mu,
		interp:    interpreter.New(mapping.Keys(), reg),
		mapping:   mapping,
		keyboard:  keyboard,
		devName:   devName,
		forwarded: map[uint16]bool{},
	}
}

// ProcessEvent handles a single input event
func (d *Dispatcher) ProcessEvent(event *evdev.InputEvent) int {
	if event.Type != EvKey {
		// The virtual devices write their own sync reports
		return MuteEvent
	}
	if event.Value == keyRepeated {
		return MuteEvent
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mu.stopped {
		return MuteEvent
	}

	before := d.interp.Mode()
	pass := d.interp.Handle(interpreter.KeyEvent{
		Code:    interpreter.Keycode(event.Code),
		Pressed: event.Value == keyPressed,
	})
	if after := d.interp.Mode(); after != before {
		dprint("%s: %v -> %v on code %d value %d\n", d.devName, before, after, event.Code, event.Value)
	}
	if !pass {
		dprint("%s: intercepted code %d value %d\n", d.devName, event.Code, event.Value)
		// A key that went down before a trigger still has to come up
		if event.Value == keyReleased && d.forwarded[event.Code] {
			d.forwardUp(event.Code)
		}
		return MuteEvent
	}

	// Triggers are custom keys with no default action
	if d.mapping.IsTrigger(event.Code) {
		return MuteEvent
	}

	if event.Value == keyPressed {
		if err := d.keyboard.KeyDown(int(event.Code)); err != nil {
			logger.Printf("Failed to forward code %d from %s: %v", event.Code, d.devName, err)
		}
		d.forwarded[event.Code] = true
	} else {
		d.forwardUp(event.Code)
	}
	return PassThruEvent
}

func (d *Dispatcher) forwardUp(code uint16) {
	delete(d.forwarded, code)
	if err := d.keyboard.KeyUp(int(code)); err != nil {
		logger.Printf("Failed to forward release of %d from %s: %v", code, d.devName, err)
	}
}

// releaseForwarded lifts every key still down on the virtual keyboard.
// The caller holds d.mu.
func (d *Dispatcher) releaseForwarded() {
	codes := make([]uint16, 0, len(d.forwarded))
	for code := range d.forwarded {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		logger.Printf("Releasing forwarded %d from %s", code, d.devName)
		d.forwardUp(code)
	}
}

// Stop drops all later events, then releases every registered virtual key
// and every forwarded key.
func Stop(mu *DispatchLock, registry *host.Registry, dispatchers []*Dispatcher) {
	mu.Lock()
	defer mu.Unlock()
	mu.stopped = true
	if registry != nil {
		// Release keys in case they're stuck
		registry.ReleaseAll()
	}
	for _, d := range dispatchers {
		d.releaseForwarded()
	}
}

// logKeyboard stands in for the virtual keyboard in dry-run mode
type logKeyboard struct{}

func (logKeyboard) KeyDown(key int) error {
	logger.Printf("forward down %d", key)
	return nil
}

func (logKeyboard) KeyUp(key int) error {
	logger.Printf("forward up %d", key)
	return nil
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML config file")
	debugFlag := flag.Bool("debug", false, "print every transition")
	dryRun := flag.Bool("dry-run", false, "log remapped keys instead of creating virtual devices")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	debug = *debugFlag || cfg.Log.Debug

	fmt.Println("Starting goWinMouse...")
	if !*dryRun {
		logFile, err := setupLogging(cfg.Log.Path)
		if err != nil {
			log.Fatalf("Failed to setup logging: %v", err)
		}
		defer logFile.Close()
	}

	// Find physical input devices
	devices, err := FindInputDevices(cfg.Devices.Names)
	if err != nil {
		log.Fatalf("Error finding input devices: %v", err)
	}
	fmt.Printf("Found %d input devices\n", len(devices))

	var (
		registrar interpreter.Registrar
		keyboard  host.Keyboard
		registry  *host.Registry
		pointer   *host.Pointer
	)
	if *dryRun {
		rec := interpreter.NewRecorder()
		rec.OnEffect = func(e interpreter.Effect) { logger.Printf("effect %v", e) }
		registrar = rec
		keyboard = logKeyboard{}
	} else {
		// Create a virtual mouse
		mouse, err := uinput.CreateMouse("/dev/uinput", []byte("goWinMouse"))
		if err != nil {
			log.Fatalf("Failed to create virtual mouse: %v", err)
		}
		defer mouse.Close()

		// Create a pass-through keyboard for non-muted events
		kb, err := uinput.CreateKeyboard("/dev/uinput", []byte("goWinKeyboard"))
		if err != nil {
			log.Fatalf("Failed to create virtual keyboard: %v", err)
		}
		defer kb.Close()

		registry = host.NewRegistry(kb, mouse, logger)
		pointer = host.NewPointer(mouse, registry.Direction, cfg.PointerSettings())
		registrar = registry
		keyboard = kb
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if pointer != nil {
		go pointer.Run(ctx, cfg.TickInterval(), func(err error) {
			logger.Printf("Failed to move pointer: %v", err)
		})
	}

	provider := keymaps.CreateDefaultKeyMappingProvider()
	var mu DispatchLock
	var dispatchers []*Dispatcher

	for i, dev := range devices {
		fmt.Printf("Monitoring device %d: %s\n", i, dev.name)

		if !*dryRun {
			if err := dev.device.Grab(); err != nil {
				log.Printf("Failed to grab device %s: %v", dev.name, err)
				continue
			}
		}

		mapping := provider.GetMapping(dev.keyboardType).Override(cfg.Mapping())
		dispatcher := NewDispatcher(&mu, mapping, registrar, keyboard, dev.name)
		dispatchers = append(dispatchers, dispatcher)

		// Start a goroutine for each device
		go func(d *InputDevice) {
			for {
				// Read the next event
				event, err := d.device.ReadOne()
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Printf("Error reading from %s: %v", d.name, err)
					continue
				}
				dispatcher.ProcessEvent(event)
			}
		}(dev)
	}

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	fmt.Println("goWinMouse active. Press Ctrl+C to exit.")
	<-c

	fmt.Println("\nShutting down...")
	cancel()
	Stop(&mu, registry, dispatchers)
	for _, dev := range devices {
		if !*dryRun {
			dev.device.Release()
		}
		dev.device.File.Close()
	}
}
