package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/snagata/ocrprep/internal/batch"
	"github.com/snagata/ocrprep/internal/detect"
	"github.com/snagata/ocrprep/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		outputDir    string
		minSize      int
		profileName  string
		workers      int
		dryRun       bool
		manifestPath string
		showVersion  bool
	)

	flag.StringVar(&outputDir, "output-dir", "photo_preprocessed", "Destination directory for processed images")
	flag.IntVar(&minSize, "min-size", 720, "Minimum length (pixels) for the shorter side after resizing")
	flag.StringVar(&profileName, "profile", "lenient", "Detection profile: lenient or strict")
	flag.IntVar(&workers, "workers", 0, "Worker pool size (0 = one per CPU)")
	flag.BoolVar(&dryRun, "dry-run", false, "Do not write files; list which images would be processed")
	flag.StringVar(&manifestPath, "manifest-path", "", "Path for the run manifest JSON (default <output-dir>/manifest.json)")
	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("ocrprep %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] image_files_or_directories...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := newLogger()

	paths, err := batch.Discover(flag.Args())
	if err != nil {
		log.WithError(err).Fatal("input discovery failed")
	}
	log.WithField("count", len(paths)).Info("discovered images")

	params := pipeline.DefaultParams()
	params.MinShortSide = minSize
	params.Profile = detect.ProfileByName(profileName)

	runner := &batch.Runner{
		Pipeline:  pipeline.New(params),
		OutputDir: outputDir,
		DryRun:    dryRun,
		Workers:   workers,
		Log:       log,
	}

	summary, err := runner.Run(paths)
	if err != nil {
		log.WithError(err).Fatal("batch run failed")
	}
	log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"failed":    summary.Failed,
		"output":    outputDir,
	}).Info("completed")

	if !dryRun {
		if manifestPath == "" {
			manifestPath = filepath.Join(outputDir, "manifest.json")
		}
		if err := batch.WriteManifest(manifestPath, summary); err != nil {
			log.WithError(err).Warn("failed to write manifest")
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// newLogger builds the structured logger, level taken from OCRPREP_LOG_LEVEL.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	switch os.Getenv("OCRPREP_LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
