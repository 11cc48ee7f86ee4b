package stream

import (
	"fmt"
	"reflect"

	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// RectTransformationOptions mirrors RectTransformationCalculator's options.
// Shift and square-long are optional; a nil pointer keeps the field out of
// the rendered config entirely rather than emitting a zero value.
type RectTransformationOptions struct {
	ScaleX     float32  `yaml:"scale_x"`
	ScaleY     float32  `yaml:"scale_y"`
	ShiftX     *float32 `yaml:"shift_x,omitempty"`
	ShiftY     *float32 `yaml:"shift_y,omitempty"`
	SquareLong *bool    `yaml:"square_long,omitempty"`
}

// Scale scales the rect(s) around their center by (scaleX, scaleY). T is
// either a single formats.NormalizedRect or a []formats.NormalizedRect.
func Scale[T any](rect vispipe.Stream[T], size vispipe.Stream[formats.Size], scaleX, scaleY float32, g *vispipe.Graph) vispipe.Stream[T] {
	return transformRect(rect, size, RectTransformationOptions{ScaleX: scaleX, ScaleY: scaleY}, g)
}

// ScaleAndShift scales the rect(s) and shifts their center by the given
// fractions of the rect size.
func ScaleAndShift[T any](rect vispipe.Stream[T], size vispipe.Stream[formats.Size], scaleX, scaleY, shiftX, shiftY float32, g *vispipe.Graph) vispipe.Stream[T] {
	return transformRect(rect, size, RectTransformationOptions{
		ScaleX: scaleX,
		ScaleY: scaleY,
		ShiftX: &shiftX,
		ShiftY: &shiftY,
	}, g)
}

// ScaleAndMakeSquare scales the rect(s) and extends the short side to match
// the long one.
func ScaleAndMakeSquare[T any](rect vispipe.Stream[T], size vispipe.Stream[formats.Size], scaleX, scaleY float32, g *vispipe.Graph) vispipe.Stream[T] {
	squareLong := true
	return transformRect(rect, size, RectTransformationOptions{
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		SquareLong: &squareLong,
	}, g)
}

// ScaleAndShiftAndMakeSquareLong combines ScaleAndShift with the
// square-long extension.
func ScaleAndShiftAndMakeSquareLong[T any](rect vispipe.Stream[T], size vispipe.Stream[formats.Size], scaleX, scaleY, shiftX, shiftY float32, g *vispipe.Graph) vispipe.Stream[T] {
	squareLong := true
	return transformRect(rect, size, RectTransformationOptions{
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		ShiftX:     &shiftX,
		ShiftY:     &shiftY,
		SquareLong: &squareLong,
	}, g)
}

// transformRect is the shared helper behind every rect transformation: one
// node, options as given, input tag picked by payload shape.
func transformRect[T any](rect vispipe.Stream[T], size vispipe.Stream[formats.Size], opts RectTransformationOptions, g *vispipe.Graph) vispipe.Stream[T] {
	node := g.AddNode("RectTransformationCalculator")
	*vispipe.Options[RectTransformationOptions](node) = opts

	rect.ConnectTo(vispipe.In(node, vispipe.InputTag[T](rectTag(reflect.TypeFor[T]()))))
	size.ConnectTo(vispipe.In(node, vispipe.InputTag[formats.Size]("IMAGE_SIZE")))
	return vispipe.Out(node, vispipe.OutputTag[T](""))
}

func rectTag(t reflect.Type) string {
	switch t {
	case reflect.TypeFor[formats.NormalizedRect]():
		return "NORM_RECT"
	case reflect.TypeFor[[]formats.NormalizedRect]():
		return "NORM_RECTS"
	}
	panic(fmt.Errorf("%w: cannot transform %v", vispipe.ErrUnsupportedType, t))
}
