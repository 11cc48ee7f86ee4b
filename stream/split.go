package stream

import (
	"fmt"
	"reflect"

	"github.com/vispipe/vispipe"
	"github.com/vispipe/vispipe/formats"
)

// SplitOptions mirrors the split calculators' options.
type SplitOptions struct {
	Ranges         []Range `yaml:"ranges"`
	ElementOnly    bool    `yaml:"element_only"`
	CombineOutputs bool    `yaml:"combine_outputs"`
}

// Range selects the half-open span [Begin, End) of a collection.
type Range struct {
	Begin int `yaml:"begin"`
	End   int `yaml:"end"`
}

type splitKind struct {
	calculator string
	element    reflect.Type
}

func splitKindFor(t reflect.Type) splitKind {
	switch t {
	case reflect.TypeFor[[]formats.Tensor]():
		return splitKind{"SplitTensorVectorCalculator", reflect.TypeFor[formats.Tensor]()}
	case reflect.TypeFor[[]formats.NormalizedRect]():
		return splitKind{"SplitNormalizedRectVectorCalculator", reflect.TypeFor[formats.NormalizedRect]()}
	case reflect.TypeFor[[]formats.Detection]():
		return splitKind{"SplitDetectionVectorCalculator", reflect.TypeFor[formats.Detection]()}
	case reflect.TypeFor[formats.NormalizedLandmarkList]():
		// Landmark lists split into sub-lists, not nested collections.
		return splitKind{"SplitNormalizedLandmarkListCalculator", reflect.TypeFor[formats.NormalizedLandmarkList]()}
	case reflect.TypeFor[formats.LandmarkList]():
		return splitKind{"SplitLandmarkListCalculator", reflect.TypeFor[formats.LandmarkList]()}
	}
	panic(fmt.Errorf("%w: cannot split %v", vispipe.ErrUnsupportedType, t))
}

func checkElement[E any](kind splitKind, collection reflect.Type) {
	if got := reflect.TypeFor[E](); got != kind.element {
		panic(fmt.Errorf("%w: splitting %v yields %v, not %v",
			vispipe.ErrTypeMismatch, collection, kind.element, got))
	}
}

// Split returns one stream per index, each carrying the single item at
// that position. E is the item type produced by splitting T: the element
// type for vector payloads, the list type itself for landmark lists.
func Split[E, T any](items vispipe.Stream[T], indices []int, g *vispipe.Graph) []vispipe.Stream[E] {
	kind := splitKindFor(reflect.TypeFor[T]())
	checkElement[E](kind, reflect.TypeFor[T]())

	node := g.AddNode(kind.calculator)
	opts := vispipe.Options[SplitOptions](node)
	opts.ElementOnly = true
	for _, idx := range indices {
		opts.Ranges = append(opts.Ranges, Range{Begin: idx, End: idx + 1})
	}

	items.ConnectTo(vispipe.In(node, vispipe.InputTag[T]("")))
	outs := make([]vispipe.Stream[E], len(indices))
	for i := range indices {
		outs[i] = vispipe.OutAt(node, vispipe.OutputTag[E](""), i)
	}
	return outs
}

// SplitToRanges returns one sub-collection stream per range, each carrying
// the span [Begin, End) of the input collection.
func SplitToRanges[T any](items vispipe.Stream[T], ranges []Range, g *vispipe.Graph) []vispipe.Stream[T] {
	kind := splitKindFor(reflect.TypeFor[T]())

	node := g.AddNode(kind.calculator)
	opts := vispipe.Options[SplitOptions](node)
	opts.Ranges = append(opts.Ranges, ranges...)

	items.ConnectTo(vispipe.In(node, vispipe.InputTag[T]("")))
	outs := make([]vispipe.Stream[T], len(ranges))
	for i := range ranges {
		outs[i] = vispipe.OutAt(node, vispipe.OutputTag[T](""), i)
	}
	return outs
}

// SplitAndCombine concatenates the items at the given indices into a single
// output collection.
func SplitAndCombine[T any](items vispipe.Stream[T], indices []int, g *vispipe.Graph) vispipe.Stream[T] {
	ranges := make([]Range, len(indices))
	for i, idx := range indices {
		ranges[i] = Range{Begin: idx, End: idx + 1}
	}
	return SplitRangesAndCombine(items, ranges, g)
}

// SplitRangesAndCombine concatenates the given ranges into a single output
// collection.
func SplitRangesAndCombine[T any](items vispipe.Stream[T], ranges []Range, g *vispipe.Graph) vispipe.Stream[T] {
	kind := splitKindFor(reflect.TypeFor[T]())

	node := g.AddNode(kind.calculator)
	opts := vispipe.Options[SplitOptions](node)
	opts.Ranges = append(opts.Ranges, ranges...)
	opts.CombineOutputs = true

	items.ConnectTo(vispipe.In(node, vispipe.InputTag[T]("")))
	return vispipe.Out(node, vispipe.OutputTag[T](""))
}
