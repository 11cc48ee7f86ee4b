package stream

import (
	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// DetectionsToRectsOptions mirrors the detection-to-rect calculators'
// options.
type DetectionsToRectsOptions struct {
	RotationVectorStartKeypointIndex int             `yaml:"rotation_vector_start_keypoint_index"`
	RotationVectorEndKeypointIndex   int             `yaml:"rotation_vector_end_keypoint_index"`
	RotationVectorTargetAngleDegrees float32         `yaml:"rotation_vector_target_angle_degrees"`
	ConversionMode                   *ConversionMode `yaml:"conversion_mode,omitempty"`
}

// ConversionMode selects how a detection becomes a rect.
type ConversionMode int

const (
	// ConversionModeDefault derives the rect from the bounding box.
	ConversionModeDefault ConversionMode = iota
	// ConversionModeUseBoundingBox forces bounding-box conversion.
	ConversionModeUseBoundingBox
	// ConversionModeUseKeypoints derives the rect from the detection's
	// keypoints.
	ConversionModeUseKeypoints
)

func (m ConversionMode) String() string {
	switch m {
	case ConversionModeUseBoundingBox:
		return "USE_BOUNDING_BOX"
	case ConversionModeUseKeypoints:
		return "USE_KEYPOINTS"
	default:
		return "DEFAULT"
	}
}

// MarshalYAML renders the symbolic name rather than the numeric value.
func (m ConversionMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// RotationParams configures the rotation derived from two keypoints of the
// detection.
type RotationParams struct {
	StartKeypointIndex int
	EndKeypointIndex   int
	// TargetAngleDegrees is the angle the start->end keypoint vector is
	// rotated to.
	TargetAngleDegrees float32
}

// ConvertDetectionToRect derives a normalized rect from one detection's
// bounding box, rotated per the keypoint parameters.
func ConvertDetectionToRect(
	detection vispipe.Stream[formats.Detection],
	imageSize vispipe.Stream[formats.Size],
	params RotationParams,
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedRect] {
	return detectionToRect[formats.Detection]("DetectionsToRectsCalculator", "DETECTION", detection, imageSize, params, nil, g)
}

// ConvertDetectionsToRectUsingKeypoints derives a single normalized rect
// from a detection vector using the detections' keypoints instead of
// bounding boxes.
func ConvertDetectionsToRectUsingKeypoints(
	detections vispipe.Stream[[]formats.Detection],
	imageSize vispipe.Stream[formats.Size],
	params RotationParams,
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedRect] {
	mode := ConversionModeUseKeypoints
	return detectionToRect[[]formats.Detection]("DetectionsToRectsCalculator", "DETECTIONS", detections, imageSize, params, &mode, g)
}

// ConvertAlignmentPointsDetectionToRect derives a normalized rect from a
// detection whose keypoints are alignment points.
func ConvertAlignmentPointsDetectionToRect(
	detection vispipe.Stream[formats.Detection],
	imageSize vispipe.Stream[formats.Size],
	params RotationParams,
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedRect] {
	return detectionToRect[formats.Detection]("AlignmentPointsRectsCalculator", "DETECTION", detection, imageSize, params, nil, g)
}

// ConvertAlignmentPointsDetectionsToRect is the detection-vector form of
// ConvertAlignmentPointsDetectionToRect.
func ConvertAlignmentPointsDetectionsToRect(
	detections vispipe.Stream[[]formats.Detection],
	imageSize vispipe.Stream[formats.Size],
	params RotationParams,
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedRect] {
	return detectionToRect[[]formats.Detection]("AlignmentPointsRectsCalculator", "DETECTIONS", detections, imageSize, params, nil, g)
}

// detectionToRect is the shared helper behind the historically diverged
// variants; only the calculator type, input tag and conversion mode differ.
func detectionToRect[T any](
	calculator, tag string,
	detections vispipe.Stream[T],
	imageSize vispipe.Stream[formats.Size],
	params RotationParams,
	mode *ConversionMode,
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedRect] {
	node := g.AddNode(calculator)
	opts := vispipe.Options[DetectionsToRectsOptions](node)
	opts.RotationVectorStartKeypointIndex = params.StartKeypointIndex
	opts.RotationVectorEndKeypointIndex = params.EndKeypointIndex
	opts.RotationVectorTargetAngleDegrees = params.TargetAngleDegrees
	opts.ConversionMode = mode

	detections.ConnectTo(vispipe.In(node, vispipe.InputTag[T](tag)))
	imageSize.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Size]("IMAGE_SIZE")))
	return vispipe.Out(node, vispipe.OutputTag[formats.NormalizedRect]("NORM_RECT"))
}
