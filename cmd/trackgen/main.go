// trackgen is a CLI utility for inspecting the generated course without a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Faultbox/snowtrack/internal/app"
	"github.com/Faultbox/snowtrack/internal/config"
	"github.com/Faultbox/snowtrack/internal/engine/audio"
	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/internal/track"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "sections", "ls":
		cmdSections(args)
	case "export", "obj":
		cmdExport(args)
	case "play":
		cmdPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`trackgen - Snowtrack course utility

Usage:
  trackgen <command> [options]

Commands:
  info                       Show course statistics and fingerprint
  sections                   List every section with its frame
  export <file.obj>          Write the course meshes as Wavefront OBJ
  play [-seed N] [-round S]  Play one round headless and print the result

Examples:
  trackgen info
  trackgen export course.obj
  trackgen play -seed 42 -round 20`)
}

func build() *track.Track {
	t, _, err := track.Build(track.DefineTrack())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return t
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	spec := track.DefineTrack()
	t, state, err := track.Build(spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	segments, triangles := 0, 0
	for _, sec := range t.Sections() {
		segments += len(sec.Segments)
		triangles += sec.Floor.TriangleCount() + sec.Walls.TriangleCount()
	}
	box := t.Bounds()
	size := box.Size()

	fmt.Printf("Sections:    %d\n", t.SectionCount())
	fmt.Printf("Segments:    %d\n", segments)
	fmt.Printf("Torches:     %d\n", len(t.Torches()))
	fmt.Printf("Triangles:   %d\n", triangles)
	fmt.Printf("Length:      %.1f m\n", spec.TotalLength())
	fmt.Printf("Extent:      %.1f x %.1f x %.1f m\n", size.X(), size.Y(), size.Z())
	fmt.Printf("End:         (%.3f, %.3f, %.3f)\n", state.Origin.X(), state.Origin.Y(), state.Origin.Z())
	fmt.Printf("Fingerprint: %016x\n", t.Fingerprint())
}

func cmdSections(args []string) {
	fs := flag.NewFlagSet("sections", flag.ExitOnError)
	fs.Parse(args)

	spec := track.DefineTrack()
	t := build()

	fmt.Printf("%-4s %7s %7s %7s %7s %5s %5s %24s\n", "#", "length", "incline", "dir", "tilt", "segs", "torch", "position")
	for i, sec := range t.Sections() {
		def := spec[i]
		fmt.Printf("%-4d %7.1f %7.1f %7.1f %7.1f %5d %5d  (%6.1f, %6.1f, %6.1f)\n",
			i, def.Length, def.Incline, def.Direction, def.Tilt,
			len(sec.Segments), len(sec.Torches),
			sec.Position.X(), sec.Position.Y(), sec.Position.Z())
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen export <file.obj>")
		os.Exit(1)
	}

	f, err := os.Create(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	t := build()
	if err := t.ExportOBJ(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d sections to %s\n", t.SectionCount(), fs.Arg(0))
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "Decoration seed")
	round := fs.Float64("round", 0, "Round length in seconds (0 = config default)")
	hz := fs.Int("hz", 60, "Simulation steps per second")
	idle := fs.Bool("idle", false, "Do not steer")
	verbose := fs.Bool("v", false, "Log to stderr")
	fs.Parse(args)

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	cfg := config.Default()
	cfg.Game.Seed = *seed
	if *round > 0 {
		cfg.Game.RoundSeconds = float32(*round)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *hz <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -hz must be positive")
		os.Exit(1)
	}

	clock := clockwork.NewFakeClockAt(time.Unix(0, 0))
	w, err := app.InitializeWorld(cfg, audio.Nop{}, clock, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pilot := app.Pilot(app.CenterPilot)
	if *idle {
		pilot = nil
	}
	maxSteps := int((float64(cfg.Game.RoundSeconds) + 30) * float64(*hz))

	res, err := app.RunRound(w, clock, 1/float32(*hz), pilot, maxSteps)
	fmt.Printf("Seed:      %d\n", w.Seed)
	fmt.Printf("Steps:     %d (%s simulated)\n", res.Steps, res.Played)
	fmt.Printf("Section:   %d of %d\n", res.Section, w.Track.SectionCount())
	fmt.Printf("Distance:  %.1f m\n", res.Distance)
	fmt.Printf("Pebbles:   %d\n", res.Pebbles)
	fmt.Printf("Carrots:   %d\n", res.Carrots)
	fmt.Printf("Hats:      %d\n", res.Hats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Title:     %s\n", res.Title)
}
