package stream

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

func TestConvertDetectionToRect(t *testing.T) {
	g := vispipe.New()
	detection := vispipe.GraphIn[formats.Detection](g, "DETECTION")
	size := vispipe.GraphIn[formats.Size](g, "SIZE")

	ConvertDetectionToRect(detection, size, RotationParams{
		StartKeypointIndex: 0,
		EndKeypointIndex:   1,
		TargetAngleDegrees: 90,
	}, g)

	cfg := g.MustBuild()
	assert.Equal(t, "DetectionsToRectsCalculator", cfg.Node[0].Calculator)
	assert.Equal(t, []string{"DETECTION:__stream_0", "IMAGE_SIZE:__stream_1"}, cfg.Node[0].InputStream)
	assert.Equal(t, []string{"NORM_RECT:__stream_2"}, cfg.Node[0].OutputStream)

	s := cfg.String()
	assert.Contains(t, s, "rotation_vector_start_keypoint_index: 0")
	assert.Contains(t, s, "rotation_vector_end_keypoint_index: 1")
	assert.Contains(t, s, "rotation_vector_target_angle_degrees: 90")
	assert.False(t, strings.Contains(s, "conversion_mode"))
}

func TestConvertDetectionsToRectUsingKeypoints(t *testing.T) {
	g := vispipe.New()
	detections := vispipe.GraphIn[[]formats.Detection](g, "DETECTIONS")
	size := vispipe.GraphIn[formats.Size](g, "SIZE")

	ConvertDetectionsToRectUsingKeypoints(detections, size, RotationParams{
		StartKeypointIndex: 33,
		EndKeypointIndex:   34,
		TargetAngleDegrees: 90,
	}, g)

	cfg := g.MustBuild()
	assert.Equal(t, []string{"DETECTIONS:__stream_0", "IMAGE_SIZE:__stream_1"}, cfg.Node[0].InputStream)
	assert.Contains(t, cfg.String(), "conversion_mode: USE_KEYPOINTS")
}

func TestConvertAlignmentPointsDetections(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		g := vispipe.New()
		detection := vispipe.GraphIn[formats.Detection](g, "DETECTION")
		size := vispipe.GraphIn[formats.Size](g, "SIZE")

		ConvertAlignmentPointsDetectionToRect(detection, size, RotationParams{TargetAngleDegrees: 90}, g)

		cfg := g.MustBuild()
		assert.Equal(t, "AlignmentPointsRectsCalculator", cfg.Node[0].Calculator)
		assert.Equal(t, []string{"DETECTION:__stream_0", "IMAGE_SIZE:__stream_1"}, cfg.Node[0].InputStream)
	})

	t.Run("vector", func(t *testing.T) {
		g := vispipe.New()
		detections := vispipe.GraphIn[[]formats.Detection](g, "DETECTIONS")
		size := vispipe.GraphIn[formats.Size](g, "SIZE")

		ConvertAlignmentPointsDetectionsToRect(detections, size, RotationParams{TargetAngleDegrees: 90}, g)

		cfg := g.MustBuild()
		assert.Equal(t, "AlignmentPointsRectsCalculator", cfg.Node[0].Calculator)
		assert.Equal(t, []string{"DETECTIONS:__stream_0", "IMAGE_SIZE:__stream_1"}, cfg.Node[0].InputStream)
	})
}

func TestConversionModeString(t *testing.T) {
	assert.Equal(t, "DEFAULT", ConversionModeDefault.String())
	assert.Equal(t, "USE_BOUNDING_BOX", ConversionModeUseBoundingBox.String())
	assert.Equal(t, "USE_KEYPOINTS", ConversionModeUseKeypoints.String())
}
