// Command acsinfo inspects and renders Microsoft Agent Character (ACS)
// files from the command line.
//
// Usage:
//
//	acsinfo info <input.acs>                         Display character metadata
//	acsinfo list <input.acs>                         List playable animation names
//	acsinfo render [-o out.png] <input.acs> <anim> <frame>   Render one frame to PNG
//	acsinfo play [options] <input.acs> <anim>                 Step through an animation, writing PNGs
//
// Options go before the positional arguments: flag parsing stops at the
// first non-flag argument.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/msagent/acs"
	"github.com/msagent/acs/animation"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "play":
		err = runPlay(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "acsinfo: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "acsinfo: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  acsinfo info <input.acs>
  acsinfo list <input.acs>
  acsinfo render [-o out.png] <input.acs> <anim> <frame>
  acsinfo play [-seed N] [-loop] [-steps N] [-outdir dir] <input.acs> <anim>

Run "acsinfo <command> -h" for command-specific options.
`)
}

func openArchive(path string) (*acs.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return acs.Open(data)
}

// --- info ---

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: acsinfo info <input.acs>")
	}
	a, err := openArchive(args[0])
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	ch := a.Character()
	infos, err := a.AllAnimationInfo()
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	withSound := 0
	for _, in := range infos {
		if in.HasSound {
			withSound++
		}
	}

	fmt.Printf("GUID:        %s\n", ch.GUID)
	fmt.Printf("Name:        %s\n", ch.Name)
	fmt.Printf("Description: %s\n", ch.Description)
	fmt.Printf("Dimensions:  %d x %d\n", ch.Width, ch.Height)
	fmt.Printf("Palette:     %d colors\n", ch.PaletteSize)
	fmt.Printf("Animations:  %d (%d playable, %d with sound)\n",
		len(infos), len(a.PlayableAnimationNames()), withSound)
	fmt.Printf("States:      %d\n", len(a.StateTable()))
	return nil
}

// --- list ---

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	all := fs.Bool("all", false, "list every animation, including non-playable transition fragments")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("list: missing input file\nUsage: acsinfo list <input.acs>")
	}

	a, err := openArchive(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	names := a.PlayableAnimationNames()
	if *all {
		names = a.AnimationNames()
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// --- render ---

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	output := fs.String("o", "", "output PNG path (default: <anim>-<frame>.png)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("render: missing arguments\nUsage: acsinfo render [-o out.png] <input.acs> <anim> <frame>")
	}

	inputPath, animName := fs.Arg(0), fs.Arg(1)
	frameIndex, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		return fmt.Errorf("render: invalid frame index %q: %w", fs.Arg(2), err)
	}

	a, err := openArchive(inputPath)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	frame, err := a.RenderFrame(animName, frameIndex)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s-%d.png", animName, frameIndex)
	}
	if err := writePNG(outputPath, frame.RGBA); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Rendered %s frame %d → %s (%dx%d, %dms", animName, frameIndex, outputPath, frame.Width, frame.Height, frame.DurationMillis)
	if frame.SoundIndex != nil {
		fmt.Fprintf(os.Stderr, ", sound %d", *frame.SoundIndex)
	}
	fmt.Fprintln(os.Stderr, ")")
	return nil
}

// --- play ---

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	seed := fs.Int64("seed", 1, "PRNG seed for branch and idle-fallback selection")
	loop := fs.Bool("loop", false, "restart from frame 0 instead of stopping at the end")
	branching := fs.Bool("branching", true, "enable probabilistic branch selection")
	steps := fs.Int("steps", 30, "maximum number of frames to step through")
	outdir := fs.String("outdir", "", "write each frame as <outdir>/frame-NNN.png")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("play: missing arguments\nUsage: acsinfo play [options] <input.acs> <anim>")
	}
	inputPath, animName := fs.Arg(0), fs.Arg(1)

	a, err := openArchive(inputPath)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	if *outdir != "" {
		if err := os.MkdirAll(*outdir, 0o755); err != nil {
			return fmt.Errorf("play: %w", err)
		}
	}

	player := a.NewPlayer(*seed)
	player.SetLoop(*loop)
	player.SetBranchingEnabled(*branching)

	emission, err := player.Play(animName)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	for i := 0; i < *steps; i++ {
		reportEmission(i, player.Current(), emission)
		if *outdir != "" {
			path := filepath.Join(*outdir, fmt.Sprintf("frame-%03d.png", i))
			if err := writePNG(path, emission.RGBA); err != nil {
				return fmt.Errorf("play: %w", err)
			}
		}

		var stopped bool
		emission, stopped, err = player.Step(animation.StepAdvance)
		if err != nil {
			return fmt.Errorf("play: %w", err)
		}
		if stopped {
			fmt.Fprintln(os.Stderr, "playback stopped")
			break
		}
	}
	return nil
}

func reportEmission(step int, animName string, e animation.Emission) {
	sound := "-"
	if e.Sound != nil {
		sound = strconv.Itoa(int(*e.Sound))
	}
	fmt.Fprintf(os.Stderr, "step %3d  %-24s %4dms  sound=%s\n", step, animName, e.Duration.Milliseconds(), sound)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
