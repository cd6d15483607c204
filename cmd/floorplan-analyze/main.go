package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/floorplan-tools/internal/floorplan"
	"github.com/ironsheep/floorplan-tools/internal/imaging"
	"github.com/ironsheep/floorplan-tools/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing so they work
	// without a plan argument
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("floorplan-analyze %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	// Logging goes to stderr, the JSON result owns stdout
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	fs := flag.NewFlagSet("floorplan-analyze", flag.ExitOnError)
	preset := fs.String("preset", "default", "threshold preset: default, sketch, cad")
	useOCR := fs.Bool("ocr", false, "use OCR word boxes to filter text annotations")
	overlay := fs.Bool("overlay", false, "include a base64 PNG overlay in the output")
	pretty := fs.Bool("pretty", false, "indent the JSON output")
	fs.Usage = usage
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := fs.Arg(0)

	var cfg floorplan.Config
	switch *preset {
	case "default":
		cfg = floorplan.DefaultConfig()
	case "sketch":
		cfg = floorplan.SketchConfig()
	case "cad":
		cfg = floorplan.CADConfig()
	default:
		log.Fatalf("Unknown preset %q (want default, sketch or cad)", *preset)
	}
	cfg.UseOCR = *useOCR
	if *useOCR && !ocr.Available() {
		log.Printf("OCR requested but not compiled in; using edge-density text filter only")
	}

	logLevel := os.Getenv("FLOORPLAN_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("floorplan-analyze v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Analyzing %s with preset %s", path, *preset)
	}

	cache := imaging.NewPlanCache()
	img, err := cache.Load(path)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", path, err)
	}

	res := floorplan.Analyze(img, cfg)

	var payload any = res
	if *overlay {
		ov, err := floorplan.RenderOverlay(img, res)
		if err != nil {
			log.Fatalf("Failed to render overlay: %v", err)
		}
		payload = struct {
			*floorplan.Result
			Overlay *floorplan.OverlayResult `json:"overlay"`
		}{res, ov}
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(payload); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}

	if !res.Success {
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("floorplan-analyze - geometric reconstruction of floor plan images")
	fmt.Println()
	fmt.Println("Usage: floorplan-analyze [options] <plan-image>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -preset string   threshold preset: default, sketch, cad")
	fmt.Println("  -ocr             use OCR word boxes to filter text annotations")
	fmt.Println("  -overlay         include a base64 PNG overlay in the output")
	fmt.Println("  -pretty          indent the JSON output")
	fmt.Println("  --version, -v    print version information")
	fmt.Println("  --help, -h       print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  FLOORPLAN_LOG_LEVEL=debug    enable debug logging")
	fmt.Println()
	fmt.Println("The analysis result is written to stdout as JSON.")
}
