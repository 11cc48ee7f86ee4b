package stream

import (
	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// SegmentationSmoothingOptions mirrors SegmentationSmoothingCalculator's
// options.
type SegmentationSmoothingOptions struct {
	CombineWithPreviousRatio float32 `yaml:"combine_with_previous_ratio"`
}

// SmoothSegmentationMask blends the current mask with the previous one,
// weighting the previous mask by ratio.
func SmoothSegmentationMask(mask, previousMask vispipe.Stream[formats.Image], ratio float32, g *vispipe.Graph) vispipe.Stream[formats.Image] {
	node := g.AddNode("SegmentationSmoothingCalculator")
	vispipe.Options[SegmentationSmoothingOptions](node).CombineWithPreviousRatio = ratio

	mask.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Image]("MASK")))
	previousMask.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Image]("MASK_PREVIOUS")))
	return vispipe.Out(node, vispipe.OutputTag[formats.Image]("SMOOTHED_MASK"))
}
