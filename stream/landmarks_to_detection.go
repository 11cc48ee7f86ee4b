package stream

import (
	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// ConvertLandmarksToDetection wraps a landmark list into a detection whose
// keypoints are the landmarks.
func ConvertLandmarksToDetection(landmarks vispipe.Stream[formats.NormalizedLandmarkList], g *vispipe.Graph) vispipe.Stream[formats.Detection] {
	node := g.AddNode("LandmarksToDetectionCalculator")
	landmarks.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.NormalizedLandmarkList]("NORM_LANDMARKS")))
	return vispipe.Out(node, vispipe.OutputTag[formats.Detection]("DETECTION"))
}
