package stream

import (
	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// ProjectLandmarks maps landmarks from a cropped region of interest back
// into the coordinate system of the full image.
func ProjectLandmarks(
	landmarks vispipe.Stream[formats.NormalizedLandmarkList],
	rect vispipe.Stream[formats.NormalizedRect],
	g *vispipe.Graph,
) vispipe.Stream[formats.NormalizedLandmarkList] {
	node := g.AddNode("LandmarkProjectionCalculator")
	landmarks.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.NormalizedLandmarkList]("NORM_LANDMARKS")))
	rect.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.NormalizedRect]("NORM_RECT")))
	return vispipe.Out(node, vispipe.OutputTag[formats.NormalizedLandmarkList]("NORM_LANDMARKS"))
}
