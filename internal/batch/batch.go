package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/snagata/ocrprep/internal/pipeline"
	"github.com/snagata/ocrprep/internal/raster"
)

// supportedExtensions lists the photograph formats the loader decodes.
var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Discover expands the given files and directories into a deduplicated,
// sorted list of supported image paths. Directories are walked
// recursively. A path that does not exist is an error; an input set that
// yields no images is too, since running a batch over nothing is almost
// always a typo.
func Discover(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var collected []string

	add := func(path string) {
		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			collected = append(collected, abs)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("input path does not exist: %s", input)
		}
		if !info.IsDir() {
			add(input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", input, err)
		}
	}

	if len(collected) == 0 {
		return nil, fmt.Errorf("no supported images were found")
	}
	sort.Strings(collected)
	return collected, nil
}

// Result records the outcome for one image. Failed entries keep the error
// out of the manifest; the Error field is for in-process inspection.
type Result struct {
	Source   string             `json:"source_path"`
	Output   string             `json:"processed_path,omitempty"`
	Metadata *pipeline.Metadata `json:"metadata,omitempty"`
	Error    error              `json:"-"`
}

// Summary aggregates a finished run.
type Summary struct {
	Processed int
	Failed    int
	Results   []Result
}

// Runner executes the pipeline over a batch of images.
type Runner struct {
	// Pipeline processes each image; shared across workers.
	Pipeline *pipeline.Pipeline

	// OutputDir receives the processed images, one per source, keeping the
	// source base name. WEBP sources are written as PNG since the encoder
	// set does not cover WEBP.
	OutputDir string

	// DryRun lists what would be processed without decoding or writing.
	DryRun bool

	// Workers is the pool size; zero or less means one per CPU.
	Workers int

	// Log receives per-image progress and failures.
	Log *logrus.Logger
}

// Run processes every path, fanning out over the worker pool. Individual
// image failures are logged and reflected in the summary; only setup
// problems (such as an unwritable output directory) abort the run.
func (r *Runner) Run(paths []string) (Summary, error) {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if r.DryRun {
		results := make([]Result, len(paths))
		for i, path := range paths {
			log.WithField("source", path).Info("dry run: would process")
			results[i] = Result{Source: path}
		}
		return Summary{Results: results}, nil
	}

	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.processOne(paths[i], log)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var summary Summary
	summary.Results = results
	for _, res := range results {
		if res.Error != nil {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}
	return summary, nil
}

// processOne decodes, processes, and writes a single image.
func (r *Runner) processOne(path string, log *logrus.Logger) Result {
	res := Result{Source: path}

	im, err := raster.Open(path)
	if err != nil {
		log.WithField("source", path).WithError(err).Error("decode failed")
		res.Error = err
		return res
	}

	enhanced, meta, err := r.Pipeline.Process(im)
	if err != nil {
		log.WithField("source", path).WithError(err).Error("processing failed")
		res.Error = err
		return res
	}

	dest := filepath.Join(r.OutputDir, filepath.Base(path))
	if strings.EqualFold(filepath.Ext(dest), ".webp") {
		dest = strings.TrimSuffix(dest, filepath.Ext(dest)) + ".png"
	}
	if err := raster.Save(enhanced, dest); err != nil {
		log.WithField("destination", dest).WithError(err).Error("write failed")
		res.Error = err
		return res
	}

	log.WithFields(logrus.Fields{
		"source":       path,
		"destination":  dest,
		"cropped":      meta.Cropped,
		"scale_factor": meta.ScaleFactor,
	}).Info("processed")

	res.Output = dest
	res.Metadata = &meta
	return res
}
