package stream

import (
	"fmt"
	"reflect"

	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// ConcatenateOptions mirrors the concatenation calculators' options.
type ConcatenateOptions struct {
	OnlyEmitIfAllPresent bool `yaml:"only_emit_if_all_present"`
}

// Concatenate joins the payloads of several same-typed streams into one
// collection per timestamp, in argument order. With onlyEmitIfAllPresent,
// timestamps where any input lacks a packet produce no output at all
// instead of a partial concatenation.
//
// Supported payload kinds are fixed: normalized and absolute landmark
// lists, joint lists and tensor vectors.
func Concatenate[T any](streams []vispipe.Stream[T], onlyEmitIfAllPresent bool, g *vispipe.Graph) vispipe.Stream[T] {
	node := g.AddNode(concatenateCalculator(reflect.TypeFor[T]()))
	vispipe.Options[ConcatenateOptions](node).OnlyEmitIfAllPresent = onlyEmitIfAllPresent
	for i, s := range streams {
		s.ConnectTo(vispipe.InAt(node, vispipe.InputTag[T](""), i))
	}
	return vispipe.Out(node, vispipe.OutputTag[T](""))
}

func concatenateCalculator(t reflect.Type) string {
	switch t {
	case reflect.TypeFor[formats.NormalizedLandmarkList]():
		return "ConcatenateNormalizedLandmarkListCalculator"
	case reflect.TypeFor[formats.LandmarkList]():
		return "ConcatenateLandmarkListCalculator"
	case reflect.TypeFor[formats.JointList]():
		return "ConcatenateJointListCalculator"
	case reflect.TypeFor[[]formats.Tensor]():
		return "ConcatenateTensorVectorCalculator"
	}
	panic(fmt.Errorf("%w: cannot concatenate %v", vispipe.ErrUnsupportedType, t))
}
