package stream

import (
	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// LandmarksSmoothingOptions mirrors the landmarks-smoothing calculators'
// options. Exactly one filter block is expected.
type LandmarksSmoothingOptions struct {
	OneEuroFilter *OneEuroFilterOptions `yaml:"one_euro_filter,omitempty"`
}

// OneEuroFilterOptions configures the one-euro filter.
type OneEuroFilterOptions struct {
	MinCutoff      float32 `yaml:"min_cutoff"`
	Beta           float32 `yaml:"beta"`
	DerivateCutoff float32 `yaml:"derivate_cutoff"`
	// Value scaling divides coordinates by the object size before
	// filtering; absolute-coordinate landmarks turn it off.
	DisableValueScaling *bool `yaml:"disable_value_scaling,omitempty"`
}

// OneEuroParams is the simplified one-euro configuration accepted by the
// single-subject smoothing combinators.
type OneEuroParams struct {
	MinCutoff      float32
	Beta           float32
	DerivateCutoff float32
}

// SmoothLandmarks runs normalized landmarks through a one-euro filter.
// imageSize is required to denormalize coordinates before filtering;
// scaleRoi, when non-nil, provides the object size used for value scaling.
func SmoothLandmarks(
	landmarks vispipe.Stream[formats.NormalizedLandmarkList],
	imageSize vispipe.Stream[formats.Size],
	scaleRoi *vispipe.Stream[formats.NormalizedRect],
	params OneEuroParams,
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedLandmarkList] {
	node := g.AddNode("LandmarksSmoothingCalculator")
	vispipe.Options[LandmarksSmoothingOptions](node).OneEuroFilter = &OneEuroFilterOptions{
		MinCutoff:      params.MinCutoff,
		Beta:           params.Beta,
		DerivateCutoff: params.DerivateCutoff,
	}

	landmarks.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.NormalizedLandmarkList]("NORM_LANDMARKS")))
	imageSize.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Size]("IMAGE_SIZE")))
	if scaleRoi != nil {
		scaleRoi.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.NormalizedRect]("OBJECT_SCALE_ROI")))
	}
	return vispipe.Out(node, vispipe.OutputTag[formats.NormalizedLandmarkList]("NORM_FILTERED_LANDMARKS"))
}

// SmoothWorldLandmarks runs absolute-coordinate landmarks through a
// one-euro filter. Coordinates are already metric, so value scaling is
// disabled and no image size is needed.
func SmoothWorldLandmarks(
	landmarks vispipe.Stream[formats.LandmarkList],
	params OneEuroParams,
	g *vispipe.Graph,
) vispipe.Stream[formats.LandmarkList] {
	disable := true
	node := g.AddNode("LandmarksSmoothingCalculator")
	vispipe.Options[LandmarksSmoothingOptions](node).OneEuroFilter = &OneEuroFilterOptions{
		MinCutoff:           params.MinCutoff,
		Beta:                params.Beta,
		DerivateCutoff:      params.DerivateCutoff,
		DisableValueScaling: &disable,
	}

	landmarks.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.LandmarkList]("LANDMARKS")))
	return vispipe.Out(node, vispipe.OutputTag[formats.LandmarkList]("FILTERED_LANDMARKS"))
}

// SmoothMultiLandmarks is the multi-subject form of SmoothLandmarks:
// trackingIDs associates filter state with subjects across frames, and the
// raw options message is passed through unchanged.
func SmoothMultiLandmarks(
	landmarks vispipe.Stream[[]formats.NormalizedLandmarkList],
	trackingIDs vispipe.Stream[[]int64],
	imageSize vispipe.Stream[formats.Size],
	opts LandmarksSmoothingOptions,
	g *vispipe.Graph,
) vispipe.Stream[[]formats.NormalizedLandmarkList] {
	node := g.AddNode("MultiLandmarksSmoothingCalculator")
	*vispipe.Options[LandmarksSmoothingOptions](node) = opts

	landmarks.ConnectTo(vispipe.In(node, vispipe.InputTag[[]formats.NormalizedLandmarkList]("NORM_LANDMARKS")))
	trackingIDs.ConnectTo(vispipe.In(node, vispipe.InputTag[[]int64]("TRACKING_IDS")))
	imageSize.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Size]("IMAGE_SIZE")))
	return vispipe.Out(node, vispipe.OutputTag[[]formats.NormalizedLandmarkList]("NORM_FILTERED_LANDMARKS"))
}

// SmoothMultiWorldLandmarks is the multi-subject form of
// SmoothWorldLandmarks.
func SmoothMultiWorldLandmarks(
	landmarks vispipe.Stream[[]formats.LandmarkList],
	trackingIDs vispipe.Stream[[]int64],
	opts LandmarksSmoothingOptions,
	g *vispipe.Graph,
) vispipe.Stream[[]formats.LandmarkList] {
	node := g.AddNode("MultiWorldLandmarksSmoothingCalculator")
	*vispipe.Options[LandmarksSmoothingOptions](node) = opts

	landmarks.ConnectTo(vispipe.In(node, vispipe.InputTag[[]formats.LandmarkList]("LANDMARKS")))
	trackingIDs.ConnectTo(vispipe.In(node, vispipe.InputTag[[]int64]("TRACKING_IDS")))
	return vispipe.Out(node, vispipe.OutputTag[[]formats.LandmarkList]("FILTERED_LANDMARKS"))
}
