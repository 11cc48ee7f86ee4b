package stream

import "github.com/vispipe/vispipe"

// ThresholdOptions mirrors ThresholdingCalculator's options.
type ThresholdOptions struct {
	Threshold float64 `yaml:"threshold"`
}

// IsOverThreshold emits value > threshold for every input packet. The
// threshold is fixed at build time.
func IsOverThreshold(value vispipe.Stream[float32], threshold float64, g *vispipe.Graph) vispipe.Stream[bool] {
	node := g.AddNode("ThresholdingCalculator")
	vispipe.Options[ThresholdOptions](node).Threshold = threshold
	value.ConnectTo(vispipe.In(node, vispipe.InputTag[float32]("FLOAT")))
	return vispipe.Out(node, vispipe.OutputTag[bool]("FLAG"))
}
