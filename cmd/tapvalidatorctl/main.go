// Command tapvalidatorctl is the operator CLI for one-shot TAP validation,
// directory batch runs, manifest building, and rendering a stored rejection
// report to PDF.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"example.com/tapgate/internal/catalogue"
	"example.com/tapgate/internal/codec"
	"example.com/tapgate/internal/common"
	"example.com/tapgate/internal/config"
	"example.com/tapgate/internal/ftp"
	"example.com/tapgate/internal/manifest"
	"example.com/tapgate/internal/rapfile"
	"example.com/tapgate/internal/report"
	"example.com/tapgate/internal/validate"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "batch":
		batchCmd(os.Args[2:])
	case "manifest":
		manifestCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf(`tapvalidatorctl %s <command> [options]

Commands:
  validate  --in <file.json> --config <config.yaml> [--metrics]
  batch     --in-dir <dir> --config <config.yaml> [--metrics] [--progress]
  manifest  --inputs <comma-separated> --out <manifest.json>
  report    --rejection <rejection.json> --out <rejection.pdf>
`, version)
}

func newValidator(cfg config.Settings, logger common.Logger) *validate.Validator {
	emissions := rapfile.NewEmissionLog(cfg.EmissionLog)
	emitter := rapfile.NewService(catalogue.NewInMemory(), codec.NewJSONCodec(), ftp.NewClient(), cfg, logger, emissions)
	return validate.NewValidator(codec.NewTagDictionary(), emitter, logger)
}

func loadConfigOrExit(path string) config.Settings {
	if strings.TrimSpace(path) == "" {
		return config.Settings{}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Println("load config:", err)
		os.Exit(1)
	}
	return cfg
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	in := fs.String("in", "", "input decoded TAP file (JSON)")
	cfgPath := fs.String("config", "", "daemon config YAML")
	metricsFlag := fs.Bool("metrics", false, "print validation throughput metrics")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}

	cfg := loadConfigOrExit(*cfgPath)
	logger := common.NewDefaultLogger()
	validator := newValidator(cfg, logger)

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Println("read input:", err)
		os.Exit(1)
	}
	di, err := codec.NewJSONCodec().Decode(data)
	if err != nil {
		fmt.Println("decode:", err)
		os.Exit(1)
	}

	var metrics *common.ValidationMetrics
	if *metricsFlag {
		metrics = common.NewValidationMetrics()
		metrics.Start()
	}
	result := validator.Validate(di)
	if metrics != nil {
		switch result {
		case validate.TAPValid:
			metrics.RecordValid()
		case validate.FatalError:
			metrics.RecordFatal()
		default:
			metrics.RecordImpossible()
		}
		metrics.Stop()
	}

	fmt.Println("Result:", result.String())
	if metrics != nil {
		snap := metrics.Snapshot()
		fmt.Printf("Metrics: duration=%s total=%d valid=%d fatal=%d impossible=%d raps=%d\n",
			snap.Duration.Round(time.Millisecond), snap.Total, snap.Valid, snap.Fatal, snap.Impossible, snap.RAPsEmitted)
	}
	if result != validate.TAPValid {
		os.Exit(1)
	}
}

func batchCmd(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	inDir := fs.String("in-dir", ".", "directory of decoded TAP files (JSON)")
	cfgPath := fs.String("config", "", "daemon config YAML")
	metricsFlag := fs.Bool("metrics", false, "print validation throughput metrics")
	progressFlag := fs.Bool("progress", false, "display validation progress updates")
	fs.Parse(args)

	entries, err := os.ReadDir(*inDir)
	if err != nil {
		fmt.Println("read dir:", err)
		os.Exit(1)
	}

	cfg := loadConfigOrExit(*cfgPath)
	logger := common.NewDefaultLogger()
	validator := newValidator(cfg, logger)
	jc := codec.NewJSONCodec()

	var metrics *common.ValidationMetrics
	if *metricsFlag || *progressFlag {
		metrics = common.NewValidationMetrics()
		metrics.Start()
	}
	var stopProgress func()
	if metrics != nil && *progressFlag {
		stopProgress = common.StartProgressPrinter(os.Stderr, metrics, 500*time.Millisecond)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(*inDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Errorf("batch: read %s: %v", path, err)
			continue
		}
		di, err := jc.Decode(data)
		if err != nil {
			logger.Errorf("batch: decode %s: %v", path, err)
			continue
		}
		result := validator.Validate(di)
		processed++
		if metrics != nil {
			switch result {
			case validate.TAPValid:
				metrics.RecordValid()
			case validate.FatalError:
				metrics.RecordFatal()
			default:
				metrics.RecordImpossible()
			}
		}
		fmt.Printf("%s: %s\n", e.Name(), result.String())
	}

	if stopProgress != nil {
		stopProgress()
	}
	if metrics != nil {
		metrics.Stop()
	}
	fmt.Printf("Processed %d file(s)\n", processed)
	if metrics != nil && *metricsFlag {
		snap := metrics.Snapshot()
		fmt.Printf("Metrics: duration=%s total=%d valid=%d fatal=%d impossible=%d raps=%d rate=%.1f/s\n",
			snap.Duration.Round(time.Millisecond), snap.Total, snap.Valid, snap.Fatal, snap.Impossible, snap.RAPsEmitted, snap.RatePerSecond())
	}
}

func manifestCmd(args []string) {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	inputs := fs.String("inputs", "", "comma-separated paths")
	out := fs.String("out", "manifest.json", "output json")
	fs.Parse(args)

	if *inputs == "" {
		fmt.Println("required: --inputs")
		os.Exit(1)
	}
	var paths []string
	for _, p := range strings.Split(*inputs, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		fmt.Println("no input paths specified")
		os.Exit(1)
	}
	m, err := manifest.Build(paths)
	if err != nil {
		fmt.Println("manifest build:", err)
		os.Exit(1)
	}
	if err := manifest.Save(m, *out); err != nil {
		fmt.Println("manifest save:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", *out)
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	rejectionPath := fs.String("rejection", "", "rejection json as written by report.SaveRejectionJSON")
	out := fs.String("out", "rejection.pdf", "output pdf")
	fs.Parse(args)

	if *rejectionPath == "" {
		fmt.Println("required: --rejection")
		os.Exit(1)
	}
	rep, err := report.LoadRejectionJSON(*rejectionPath)
	if err != nil {
		fmt.Println("load rejection:", err)
		os.Exit(1)
	}
	if err := report.SaveRejectionPDF(rep, *out); err != nil {
		fmt.Println("render pdf:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", *out)
}
