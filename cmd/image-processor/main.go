package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	imageprocessor "github.com/virtual930/image-processor"
	"github.com/virtual930/image-processor/internal/config"
	"github.com/virtual930/image-processor/internal/utils"
)

const logFileName = "image_processing.txt"

func main() {
	var in, out, ext, cfgPath string
	var size, quality, workers int
	var tolerance float64

	flag.StringVar(&in, "in", ".", "input directory containing images (jpg/jpeg/png/bmp/webp)")
	flag.StringVar(&out, "out", "", "output directory (default: \"revised images\" inside the input directory)")
	flag.StringVar(&cfgPath, "config", "", "optional JSON config file")

	flag.IntVar(&size, "size", 0, fmt.Sprintf("output square side length in pixels (%d-%d)", config.MinSize, config.MaxSize))
	flag.Float64Var(&tolerance, "tolerance", 0, "aspect ratio deviation still counted as square (0-1)")
	flag.StringVar(&ext, "ext", "", "output format: jpg|jpeg|png|webp|bmp, or 'org' to keep the original")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality (1-100)")
	flag.IntVar(&workers, "workers", 0, "number of images processed in parallel")

	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// Flags override the config file
	if size > 0 {
		cfg.Pipeline.Size = size
	}
	if tolerance > 0 {
		cfg.Pipeline.Tolerance = tolerance
	}
	if quality > 0 {
		cfg.Pipeline.Quality = quality
	}
	if ext != "" {
		cfg.Output.Token = ext
	}
	if workers > 0 {
		cfg.Output.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if out == "" {
		out = filepath.Join(in, cfg.Output.Folder)
	}
	if err := utils.EnsureDir(out); err != nil {
		log.Fatalf("could not create the output folder: %v", err)
	}

	logger, closeLog, err := openLogger(out)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	files, err := utils.ListImageFiles(in)
	if err != nil {
		logger.Printf("could not read input folder %s: %v", in, err)
		return
	}

	proc := imageprocessor.NewWithSpec(cfg.Spec())

	var processed, failed int64
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Output.Workers)

	for _, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			outputPath, err := proc.ProcessFile(path, out)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				logger.Printf("error processing %s: %v", path, err)
				return
			}
			atomic.AddInt64(&processed, 1)
			logger.Printf("saved: %s", outputPath)
		}(file)
	}
	wg.Wait()

	if processed == 0 {
		logger.Printf("warning: no images processed, please check the input folder for valid image files")
		return
	}
	logger.Printf("processed %d images (%d failed)", processed, failed)
}

// openLogger mirrors log output to stderr and a log file inside the
// output folder, so each batch keeps a record next to its results.
func openLogger(outDir string) (*log.Logger, func(), error) {
	f, err := os.OpenFile(filepath.Join(outDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}
	logger := log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags)
	return logger, func() { f.Close() }, nil
}
