package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"git.c3pb.de/farhaven/planetarium/registry"
	"git.c3pb.de/farhaven/planetarium/resources"
	"git.c3pb.de/farhaven/planetarium/scene"
	"git.c3pb.de/farhaven/planetarium/term"
	"git.c3pb.de/farhaven/planetarium/trail"
	"git.c3pb.de/farhaven/planetarium/ui"
	"git.c3pb.de/farhaven/planetarium/ui/text"
)

var (
	width       = flag.Int("width", 1024, "window width")
	height      = flag.Int("height", 768, "window height")
	textures    = flag.String("textures", "", "directory with <body>.png/.jpg/.webp/.bmp textures")
	font        = flag.String("font", "", "TrueType font for labels (default: Go Regular)")
	speed       = flag.Float64("speed", 1, "initial time speed multiplier")
	trailStyle  = flag.String("trail", trail.Glow.String(), "trail style: plain, glow, particle, meteor, rainbow, solid or none")
	trailLength = flag.Int("trail-length", trail.DefaultLength, "trail length in points")
	useTerm     = flag.Bool("term", false, "draw in the terminal instead of a window")
)

type choice int

const (
	quit choice = iota
	retry
	terminal
)

// ask offers the user a way out after the renderer failed.
func ask(in io.Reader, out io.Writer) choice {
	fmt.Fprint(out, "Rendering failed. [r]etry, [t]erminal view or [q]uit? ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return quit
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "r", "retry":
		return retry
	case "t", "term", "terminal":
		return terminal
	default:
		return quit
	}
}

func settingsFromFlags() (scene.Settings, error) {
	s := scene.DefaultSettings()

	style, ok := trail.ParseStyle(*trailStyle)
	if !ok {
		return s, errors.Errorf(`unknown trail style %q`, *trailStyle)
	}
	if *speed <= 0 {
		return s, errors.Errorf(`time speed must be positive, got %g`, *speed)
	}

	s.TimeSpeed = *speed
	s.TrailStyle = style
	s.TrailLength = trail.ClampLength(*trailLength)
	return s, nil
}

func bodyColor(reg *registry.Registry) func(string) colorful.Color {
	return func(id string) colorful.Color {
		b, _ := reg.Lookup(id)
		return b.RGB()
	}
}

func runTerminal(ctx context.Context, sc *scene.Scene) error {
	v, err := term.Open(sc)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run(ctx)
}

func runWindow(ctx context.Context, sc *scene.Scene) error {
	txt, err := text.NewContext(*font)
	if err != nil {
		return err
	}

	for {
		err := func() error {
			d, err := ui.NewDrawContext(*width, *height, sc, txt)
			if err != nil {
				return err
			}
			defer d.Close()

			return d.Run(ctx)
		}()
		if err == nil {
			return nil
		}

		log.Printf(`renderer failed: %s`, err)
		switch ask(os.Stdin, os.Stderr) {
		case retry:
			continue
		case terminal:
			return runTerminal(ctx, sc)
		default:
			return err
		}
	}
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := settingsFromFlags()
	if err != nil {
		log.Fatalf(`%s`, err)
	}

	reg := registry.Default()

	var loader resources.Loader
	if *textures != "" {
		loader = resources.DirLoader(*textures)
	}
	res := resources.New(loader, bodyColor(reg))

	sc, err := scene.New(reg, settings, res)
	if err != nil {
		log.Fatalf(`can't build scene: %s`, err)
	}
	defer sc.Close()

	sc.OnSelect(func(id string) {
		if id == "" {
			log.Println(`focus cleared`)
			return
		}
		log.Printf(`focusing %s`, id)
	})

	if loader != nil {
		if err := res.Preload(ctx, reg.IDs()); err != nil {
			log.Printf(`texture preload interrupted: %s`, err)
			return
		}
	}

	if *useTerm {
		err = runTerminal(ctx, sc)
	} else {
		err = runWindow(ctx, sc)
	}
	if err != nil {
		log.Printf(`%s`, err)
	}
	log.Println(`shut down`)
}
