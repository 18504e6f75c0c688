package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/JoshCooperr/chip8-interpreter/pkg/display"
	"github.com/JoshCooperr/chip8-interpreter/pkg/screenshot"
	"github.com/JoshCooperr/chip8-interpreter/pkg/vm"
	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

type options struct {
	rom   string
	ipf   int
	scale int
	seed  int64

	noGate bool
	debug  bool
	quiet  bool
	shots  string
}

func readArguments() options {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options{}

	flags.IntVar(&opts.ipf, "ipf", 12, "instructions executed per 60Hz frame")
	flags.IntVar(&opts.scale, "scale", display.DefaultScale, "size of a CHIP-8 pixel on screen")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for the random number generator, 0 seeds from the clock")
	flags.BoolVar(&opts.noGate, "nogate", false, "draw sprites immediately rather than once per frame")
	flags.BoolVar(&opts.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")
	flags.StringVar(&opts.shots, "screenshots", ".", "directory F12 screenshots are saved to")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) != 1 || opts.ipf < 1 || opts.scale < 1 {
		fmt.Printf("usage: chip8 [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.rom = args[0]

	return opts
}

func createLogger(opts options) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.debug {
		cfg.Level = log.DebugLevel
	} else if opts.quiet {
		cfg.Level = log.ErrorLevel
	}
	cfg.Output = os.Stderr
	return log.NewWithConfig(cfg)
}

func newVM(logger *log.Logger, opts options) (*vm.VM, error) {
	cfg := vm.DefaultConfig()
	cfg.DrawGate = !opts.noGate
	cfg.Logger = logger.Named("vm")
	if opts.seed != 0 {
		cfg.Random = rand.New(rand.NewSource(opts.seed))
	}

	f, err := os.Open(opts.rom)
	if err != nil {
		return nil, errors.Wrap(vm.ErrROMRead, err.Error())
	}
	defer f.Close()

	mc := vm.New(cfg)
	if err := mc.LoadROM(f); err != nil {
		return nil, errors.Wrap(err, opts.rom)
	}
	return mc, nil
}

// the timers and the draw gate run at 60Hz whatever the refresh rate of the
// display
const frameDuration = time.Second / 60

// run is the drive loop. Each 60Hz frame key transitions are fed to the VM, a
// number of instructions are executed, the timers tick once and the draw gate
// is released. The screen is drawn once per pass, pacing the loop by vsync.
func run(logger *log.Logger, opts options) error {
	mc, err := newVM(logger, opts)
	if err != nil {
		return err
	}

	d, err := display.NewDisplay(fmt.Sprintf("Chip8 - %s", filepath.Base(opts.rom)), opts.scale)
	if err != nil {
		return errors.Wrap(err, "display")
	}

	start := time.Now()
	last := start
	frames := 0

	var pending time.Duration

	for !d.Closed() && !d.QuitRequested() {
		for _, ev := range d.PollKeys() {
			mc.SetKey(ev.Key, ev.Pressed)
		}

		now := time.Now()
		pending += now.Sub(last)
		last = now

		// don't try to catch up after a stall (window being dragged, etc.)
		if pending > frameDuration*4 {
			pending = frameDuration
		}

		for ; pending >= frameDuration; pending -= frameDuration {
			for i := 0; i < opts.ipf; i++ {
				if err := mc.Step(); err != nil {
					return errors.Wrapf(err, "instruction %04X", mc.Opcode())
				}
			}
			mc.TickTimers()
			mc.FrameBoundary()
			frames++
		}

		if d.ScreenshotRequested() {
			name, err := screenshot.Save(opts.shots, mc.Screen(), opts.scale)
			if err != nil {
				logger.Error("Saving screenshot failed", err)
			} else {
				logger.Info("Screenshot saved", log.String("file", name))
			}
		}

		d.SetBeep(mc.Beeping())
		d.Render(mc.Screen())
	}

	logger.Debug("Emulation stopped",
		log.Int("frames", frames),
		log.Duration("elapsed", time.Since(start)))
	return nil
}

func main() {
	opts := readArguments()
	logger := createLogger(opts)

	var runErr error
	pixelgl.Run(func() {
		runErr = run(logger, opts)
	})

	if runErr != nil {
		logger.Fatal(runErr.Error())
	}
}
