package main

import (
	"fmt"
	"image/png"
	"os"
	"sync/atomic"
	"time"

	"spekgram/cmd"
	"spekgram/internal/config"
	"spekgram/internal/decode"
	"spekgram/internal/log"
	"spekgram/internal/render"
	"spekgram/internal/spectro"
	"spekgram/internal/term"
	"spekgram/pkg/build"
)

// main runs one analysis pass over a single audio file:
//
//  1. Startup: build info, argument parsing, config merge, one-off
//     commands.
//  2. Analysis: decode the file, run the spectrogram pipeline, draw
//     the overlays.
//  3. Output: write the PNG if requested and print the report.
func main() {
	totalStart := time.Now()

	build.Initialize()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(level)
	}
	if cfg.Quiet {
		log.SetQuiet()
	}

	// One-off commands that don't touch any audio.
	if cfg.Command == "palettes" {
		for _, name := range spectro.PaletteNames() {
			fmt.Println(name)
		}
		return
	}
	if cfg.InputFile == "" {
		// Help or version output already handled by the parser.
		return
	}

	info := build.GetBuildFlags()
	if !cfg.Quiet {
		term.PrintHeader(info.Name, info.Version)
	}

	decodeStart := time.Now()
	audio, err := decode.Load(cfg.InputFile)
	if err != nil {
		log.Fatalf("decoding %s: %v", cfg.InputFile, err)
	}
	decodeTime := time.Since(decodeStart)

	if !cfg.Quiet {
		term.PrintFileInfo(cfg.InputFile, audio)
	}

	opts := spectro.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		LogScale: cfg.LogScale,
		Rolloff:  cfg.Rolloff,
		Stops:    paletteStops(cfg),
	}

	// The pipeline counter is advisory; the watcher just polls it for
	// a percentage while the analysis runs.
	var counter atomic.Uint64
	var stopWatcher func()
	if cfg.Verbose && !cfg.Quiet {
		opts.Progress = &counter
		stopWatcher = watchProgress(&counter, spectro.ProgressUnits(len(audio.Samples), opts))
	}

	analyzeStart := time.Now()
	result, err := spectro.Generate(audio.Samples, audio.SampleRate, opts)
	if stopWatcher != nil {
		stopWatcher()
	}
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	analyzeTime := time.Since(analyzeStart)

	overlayStart := time.Now()
	if cfg.Rolloff {
		render.DrawRolloff(result.Image, result.Rolloff, result.Nyquist, cfg.LogScale)
	}
	render.DrawTicks(result.Image, result.Nyquist, audio.Duration, cfg.LogScale)
	overlayTime := time.Since(overlayStart)

	if !cfg.Quiet {
		term.PrintAnalysis(result)
	}

	if cfg.SavePath != "" {
		if err := savePNG(cfg.SavePath, result); err != nil {
			log.Fatalf("saving %s: %v", cfg.SavePath, err)
		}
		if !cfg.Quiet {
			term.PrintSaved(cfg.SavePath)
		}
	} else {
		log.Infof("no output requested; pass --save out.png to write the spectrogram")
	}

	if cfg.Verbose && !cfg.Quiet {
		term.PrintTimings(decodeTime, analyzeTime, overlayTime, time.Since(totalStart))
	}
}

// paletteStops resolves the gradient for this run: a custom stop set
// from the config file wins over the named built-in palette.
func paletteStops(cfg *config.Config) []spectro.ColorStop {
	if len(cfg.Stops) > 0 {
		stops := make([]spectro.ColorStop, len(cfg.Stops))
		for i, s := range cfg.Stops {
			stops[i] = spectro.ColorStop{Position: s.Position, Color: s.Color}
		}
		return stops
	}
	return spectro.Palette(cfg.Palette)
}

// savePNG hands the finished image to the PNG encoder.
func savePNG(path string, result *spectro.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, result.Image); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// watchProgress prints an updating percentage to stderr until the
// returned stop function is called.
func watchProgress(counter *atomic.Uint64, total uint64) func() {
	if total == 0 {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(150 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fmt.Fprintf(os.Stderr, "\r%40s\r", "")
				return
			case <-ticker.C:
				pct := float64(counter.Load()) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\rAnalyzing... %3.0f%%", pct)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
