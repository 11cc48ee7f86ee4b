package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
	"github.com/vispipe/vispipe/stream"
)

var log *zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05.000Z07:00"}
	zlog := zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	log = &zlog
}

// graphgen renders the bundled demo pipelines to disk, as a smoke test for
// the builder and as ready-to-load configs for the execution engine.
func main() {
	outDir := flag.String("out", ".", "output directory")
	format := flag.String("format", "pbtxt", "output format: pbtxt or yaml")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		zlog := log.Level(zerolog.DebugLevel)
		log = &zlog
	}
	if *format != "pbtxt" && *format != "yaml" {
		log.Fatal().Str("format", *format).Msg("unknown format")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output directory")
	}

	pipelines := map[string]func(*vispipe.Graph){
		"landmark_filtering": buildLandmarkFiltering,
		"tracking_loop":      buildTrackingLoop,
		"mask_smoothing":     buildMaskSmoothing,
	}

	var eg errgroup.Group
	for name, build := range pipelines {
		eg.Go(func() error {
			return render(name, build, *outDir, *format)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

func render(name string, build func(*vispipe.Graph), outDir, format string) error {
	g := vispipe.New(vispipe.WithLogger(zerologr.New(log).WithName(name)))
	build(g)

	cfg, err := g.Build()
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
	default:
		data = []byte(cfg.String())
	}

	path := filepath.Join(outDir, name+"."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("nodes", len(cfg.Node)).Msg("rendered")
	return nil
}

// buildLandmarkFiltering smooths incoming landmarks and derives a region of
// interest for the next inference crop.
func buildLandmarkFiltering(g *vispipe.Graph) {
	image := vispipe.GraphIn[formats.Image](g, "IMAGE")
	landmarks := vispipe.GraphIn[formats.NormalizedLandmarkList](g, "NORM_LANDMARKS")

	size := stream.GetImageSize(image, g)
	filtered := stream.SmoothLandmarks(landmarks, size, nil, stream.OneEuroParams{
		MinCutoff:      0.05,
		Beta:           80,
		DerivateCutoff: 1,
	}, g)

	detection := stream.ConvertLandmarksToDetection(filtered, g)
	roi := stream.ConvertDetectionToRect(detection, size, stream.RotationParams{
		StartKeypointIndex: 0,
		EndKeypointIndex:   1,
		TargetAngleDegrees: 90,
	}, g)
	roi = stream.ScaleAndMakeSquare(roi, size, 1.25, 1.25, g)

	filtered.ConnectTo(vispipe.GraphOut[formats.NormalizedLandmarkList](g, "FILTERED_LANDMARKS"))
	roi.ConnectTo(vispipe.GraphOut[formats.NormalizedRect](g, "ROI"))
}

// buildTrackingLoop runs the detector output through a detection-or-tracking
// switch: while a region from the previous frame exists, fresh detections
// are suppressed and the loopback region is reused.
func buildTrackingLoop(g *vispipe.Graph) {
	image := vispipe.GraphIn[formats.Image](g, "IMAGE")
	detections := vispipe.GraphIn[[]formats.Detection](g, "DETECTIONS")

	size := stream.GetImageSize(image, g)
	prevRoi, setPrevRoi := stream.GetLoopbackData[formats.NormalizedRect](size, g)
	tracking := stream.IsPresent(prevRoi, g)

	freshDetections := stream.DisallowIf(detections, tracking, g)
	first := stream.Split[formats.Detection](freshDetections, []int{0}, g)[0]
	detectedRoi := stream.ConvertDetectionToRect(first, size, stream.RotationParams{
		StartKeypointIndex: 0,
		EndKeypointIndex:   1,
		TargetAngleDegrees: 90,
	}, g)

	roi := stream.Merge(detectedRoi, prevRoi, g)
	setPrevRoi(roi)
	roi.ConnectTo(vispipe.GraphOut[formats.NormalizedRect](g, "ROI"))
}

// buildMaskSmoothing blends each segmentation mask with the previous one
// and exposes the result behind a side-packet switch. Registered under a
// type name so it can be embedded as a subgraph.
func buildMaskSmoothing(g *vispipe.Graph) {
	g.SetType("MaskSmoothingSubgraph")

	mask := vispipe.GraphIn[formats.Image](g, "MASK")
	enabled := vispipe.GraphSideIn[bool](g, "ENABLE")

	prevMask, setPrevMask := stream.GetLoopbackData[formats.Image](mask, g)
	smoothed := stream.SmoothSegmentationMask(mask, prevMask, 0.7, g)
	setPrevMask(smoothed)

	gate := stream.AllowSideGate(enabled, g)
	out := stream.GateStream(gate, smoothed)
	out.ConnectTo(vispipe.GraphOut[formats.Image](g, "FILTERED_MASK"))
}
