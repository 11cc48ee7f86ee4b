package stream

import (
	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// GetImageSize extracts the pixel size of every image packet.
func GetImageSize(image vispipe.Stream[formats.Image], g *vispipe.Graph) vispipe.Stream[formats.Size] {
	node := g.AddNode("ImagePropertiesCalculator")
	image.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Image]("IMAGE")))
	return vispipe.Out(node, vispipe.OutputTag[formats.Size]("SIZE"))
}
