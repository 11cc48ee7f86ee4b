package stream

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

func TestIsPresent(t *testing.T) {
	g := vispipe.New()
	rect := vispipe.GraphIn[formats.NormalizedRect](g, "RECT")

	IsPresent(rect, g)

	cfg := g.MustBuild()
	assert.Equal(t, "PacketPresenceCalculator", cfg.Node[0].Calculator)
	assert.Equal(t, []string{"PACKET:__stream_0"}, cfg.Node[0].InputStream)
	assert.Equal(t, []string{"PRESENCE:__stream_1"}, cfg.Node[0].OutputStream)
}

func TestIsOverThreshold(t *testing.T) {
	g := vispipe.New()
	score := vispipe.GraphIn[float32](g, "SCORE")

	IsOverThreshold(score, 0.5, g)

	cfg := g.MustBuild()
	assert.Equal(t, "ThresholdingCalculator", cfg.Node[0].Calculator)
	assert.Equal(t, []string{"FLOAT:__stream_0"}, cfg.Node[0].InputStream)
	assert.Equal(t, []string{"FLAG:__stream_1"}, cfg.Node[0].OutputStream)
	assert.Contains(t, cfg.String(), "threshold: 0.5")
}

func TestGetImageSize(t *testing.T) {
	g := vispipe.New()
	image := vispipe.GraphIn[formats.Image](g, "IMAGE")

	GetImageSize(image, g)

	cfg := g.MustBuild()
	assert.Equal(t, "ImagePropertiesCalculator", cfg.Node[0].Calculator)
	assert.Equal(t, []string{"IMAGE:__stream_0"}, cfg.Node[0].InputStream)
	assert.Equal(t, []string{"SIZE:__stream_1"}, cfg.Node[0].OutputStream)
}

func TestSmoothSegmentationMask(t *testing.T) {
	g := vispipe.New()
	mask := vispipe.GraphIn[formats.Image](g, "MASK")

	prev, setPrev := GetLoopbackData[formats.Image](mask, g)
	smoothed := SmoothSegmentationMask(mask, prev, 0.7, g)
	setPrev(smoothed)

	cfg := g.MustBuild()
	assert.Equal(t, "SegmentationSmoothingCalculator", cfg.Node[1].Calculator)
	assert.Equal(t, []string{"MASK:__stream_0", "MASK_PREVIOUS:__stream_1"}, cfg.Node[1].InputStream)
	assert.Equal(t, []string{"SMOOTHED_MASK:__stream_2"}, cfg.Node[1].OutputStream)
	assert.Contains(t, cfg.String(), "combine_with_previous_ratio: 0.7")
}

func TestLandmarksToDetectionToRoi(t *testing.T) {
	g := vispipe.New()
	image := vispipe.GraphIn[formats.Image](g, "IMAGE")
	landmarks := vispipe.GraphIn[formats.NormalizedLandmarkList](g, "LANDMARKS")

	size := GetImageSize(image, g)
	detection := ConvertLandmarksToDetection(landmarks, g)
	roi := ConvertDetectionToRect(detection, size, RotationParams{
		StartKeypointIndex: 0,
		EndKeypointIndex:   1,
		TargetAngleDegrees: 90,
	}, g)
	roi = ScaleAndMakeSquare(roi, size, 1.25, 1.25, g)
	roi.ConnectTo(vispipe.GraphOut[formats.NormalizedRect](g, "ROI"))

	cfg := g.MustBuild()
	assert.Equal(t, 4, len(cfg.Node))
	assert.Equal(t, []string{"IMAGE:__stream_0", "LANDMARKS:__stream_1"}, cfg.InputStream)
	assert.Equal(t, []string{"ROI:__stream_5"}, cfg.OutputStream)

	// Each node consumes names produced upstream.
	assert.Equal(t, "LandmarksToDetectionCalculator", cfg.Node[1].Calculator)
	assert.Equal(t, []string{"NORM_LANDMARKS:__stream_1"}, cfg.Node[1].InputStream)
	assert.Equal(t, "DetectionsToRectsCalculator", cfg.Node[2].Calculator)
	assert.Equal(t, []string{"DETECTION:__stream_3", "IMAGE_SIZE:__stream_2"}, cfg.Node[2].InputStream)
	assert.Equal(t, "RectTransformationCalculator", cfg.Node[3].Calculator)
	assert.Equal(t, []string{"IMAGE_SIZE:__stream_2", "NORM_RECT:__stream_4"}, cfg.Node[3].InputStream)
}

func TestProjectLandmarks(t *testing.T) {
	g := vispipe.New()
	landmarks := vispipe.GraphIn[formats.NormalizedLandmarkList](g, "LANDMARKS")
	roi := vispipe.GraphIn[formats.NormalizedRect](g, "ROI")

	ProjectLandmarks(landmarks, roi, g)

	cfg := g.MustBuild()
	assert.Equal(t, "LandmarkProjectionCalculator", cfg.Node[0].Calculator)
	assert.Equal(t, []string{"NORM_LANDMARKS:__stream_0", "NORM_RECT:__stream_1"}, cfg.Node[0].InputStream)
	assert.Equal(t, []string{"NORM_LANDMARKS:__stream_2"}, cfg.Node[0].OutputStream)
}
