package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gravity-well/audio"
	"github.com/lixenwraith/gravity-well/engine"
	"github.com/lixenwraith/gravity-well/physics"
	"github.com/lixenwraith/gravity-well/render"
	"github.com/lixenwraith/gravity-well/scenario"
	"github.com/lixenwraith/gravity-well/terminal"
	"github.com/lixenwraith/gravity-well/vmath"
)

var (
	configFlag   = flag.String("config", "", "Path to TOML config file (defaults apply when empty)")
	scenarioFlag = flag.String("scenario", "disk", "Starting scenario: disk, binary, cloud")
	bodiesFlag   = flag.Int("n", 120, "Seed body count for disk/cloud scenarios")
	muteFlag     = flag.Bool("mute", false, "Disable sound effects")
)

func main() {
	// Ensure the terminal is reset even if the loop panics
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\ngravity-well crashed: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg := engine.DefaultConfig()
	if *configFlag != "" {
		loaded, err := engine.LoadConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	screen, err := terminal.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	volume := 0.7
	if *muteFlag {
		volume = 0
	}
	// Audio failure is not fatal; the player degrades to silence
	player, _ := audio.NewPlayer(volume)
	defer player.Close()

	world := engine.NewWorld(cfg)
	seed(world, *scenarioFlag, *bodiesFlag, cfg)

	run(screen, world, player, cfg)
}

// seed populates the world from a named scenario, dropping bodies past the
// capacity cap
func seed(world *engine.World, name string, n int, cfg engine.Config) {
	var bodies []*physics.Body
	switch name {
	case "binary":
		bodies = scenario.BinaryPair(cfg.Tuning)
	case "cloud":
		bodies = scenario.RandomCloud(n, cfg.Tuning)
	default:
		bodies = scenario.OrbitalDisk(n, cfg.Tuning)
	}
	for _, b := range bodies {
		if !world.AddBody(b) {
			break
		}
	}
}

// run drives the fixed-step loop: real time accumulates and converts to
// whole simulation ticks, input and rendering happen per frame
func run(screen tcell.Screen, world *engine.World, player *audio.Player, cfg engine.Config) {
	renderer := render.New(screen)
	camera := render.NewCamera()

	// tcell's PollEvent blocks, so input arrives via its own goroutine
	input := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(input)
				return
			}
			input <- ev
		}
	}()

	const maxTicksPerFrame = 4
	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()

	paused := false
	accumulator := 0.0
	last := time.Now()

	for {
		select {
		case ev, open := <-input:
			if !open {
				return
			}
			if !handleEvent(ev, screen, world, camera, cfg, &paused) {
				return
			}

		case now := <-frame.C:
			elapsed := now.Sub(last).Seconds()
			last = now

			if !paused {
				accumulator += elapsed
				ticks := 0
				for accumulator >= cfg.TimeStep && ticks < maxTicksPerFrame {
					world.Step(cfg.TimeStep)
					accumulator -= cfg.TimeStep
					ticks++
				}
				// Shed backlog instead of spiraling when a frame runs long
				if accumulator > cfg.TimeStep*maxTicksPerFrame {
					accumulator = 0
				}
			}

			playEvents(world, player)
			renderer.Draw(world, camera, paused)
		}
	}
}

// handleEvent processes one input event; returns false to quit
func handleEvent(ev tcell.Event, screen tcell.Screen, world *engine.World, camera *render.Camera, cfg engine.Config, paused *bool) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()

	case *tcell.EventKey:
		if tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch tev.Rune() {
		case 'q':
			return false
		case ' ':
			*paused = !*paused
		case 'h':
			camera.Pan(-8, 0)
		case 'l':
			camera.Pan(8, 0)
		case 'k':
			camera.Pan(0, -4)
		case 'j':
			camera.Pan(0, 4)
		case '+', '=':
			camera.Scale(1.25)
		case '-':
			camera.Scale(0.8)
		case 's':
			spawnAtCenter(world, camera, cfg)
		case 'c':
			world.Clear()
		case 'r':
			world.Clear()
			seed(world, *scenarioFlag, *bodiesFlag, cfg)
		}
	}
	return true
}

// spawnAtCenter drops a fresh body at the camera center with a gentle
// push toward the origin, handy for poking at a stable system
func spawnAtCenter(world *engine.World, camera *render.Camera, cfg engine.Config) {
	pos := vmath.Vec2{X: camera.X, Y: camera.Y}
	vel := pos.Scale(-0.02) // drift toward the world origin
	world.AddBody(physics.NewBody(pos, vel, 500, cfg.Tuning))
}

// playEvents maps this frame's collision events to sound effects
func playEvents(world *engine.World, player *audio.Player) {
	for _, ev := range world.Events().Consume() {
		if ev.Type != engine.EventCollision {
			continue
		}
		switch {
		case ev.Generated == 1:
			player.Play(audio.SoundMerge)
		case ev.Generated == 0 || sameScale(ev.A, ev.B):
			player.Play(audio.SoundFragment)
		default:
			player.Play(audio.SoundCrater)
		}
	}
}

// sameScale distinguishes mutual fragmentation from cratering by the
// participants' mass ratio
func sameScale(a, b *physics.Body) bool {
	if a == nil || b == nil || a.Mass <= 0 || b.Mass <= 0 {
		return true
	}
	ratio := a.Mass / b.Mass
	if ratio < 1 {
		ratio = 1 / ratio
	}
	return ratio < 15
}
