package vispipe

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"gopkg.in/yaml.v3"
)

type rectOptions struct {
	ScaleX     float32  `yaml:"scale_x"`
	ScaleY     float32  `yaml:"scale_y"`
	ShiftX     *float32 `yaml:"shift_x,omitempty"`
	SquareLong *bool    `yaml:"square_long,omitempty"`
}

type splitOptions struct {
	Ranges      []rangeOption `yaml:"ranges"`
	ElementOnly bool          `yaml:"element_only"`
}

type rangeOption struct {
	Begin int `yaml:"begin"`
	End   int `yaml:"end"`
}

type testMode int

func (m testMode) String() string {
	if m == 1 {
		return "USE_KEYPOINTS"
	}
	return "DEFAULT"
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		InputStream:  []string{"IMAGE:image_in"},
		OutputStream: []string{"ROI:roi"},
		Node: []NodeConfig{
			{
				Calculator:   "RectTransformationCalculator",
				InputStream:  []string{"NORM_RECT:rect", "IMAGE_SIZE:size"},
				OutputStream: []string{"roi"},
				Options:      &rectOptions{ScaleX: 2, ScaleY: 7},
			},
		},
	}

	assert.Equal(t, `input_stream: "IMAGE:image_in"
output_stream: "ROI:roi"
node {
  calculator: "RectTransformationCalculator"
  input_stream: "NORM_RECT:rect"
  input_stream: "IMAGE_SIZE:size"
  output_stream: "roi"
  options {
    [vispipe.rectOptions] {
      scale_x: 2
      scale_y: 7
    }
  }
}
`, cfg.String())
}

func TestConfigStringOptionalFields(t *testing.T) {
	shift := float32(0.5)
	square := true

	t.Run("set pointers render", func(t *testing.T) {
		s := (&Config{Node: []NodeConfig{{
			Calculator: "RectTransformationCalculator",
			Options:    &rectOptions{ScaleX: 1, ScaleY: 1, ShiftX: &shift, SquareLong: &square},
		}}}).String()
		assert.Contains(t, s, "shift_x: 0.5")
		assert.Contains(t, s, "square_long: true")
	})

	t.Run("nil pointers omitted", func(t *testing.T) {
		s := (&Config{Node: []NodeConfig{{
			Calculator: "RectTransformationCalculator",
			Options:    &rectOptions{ScaleX: 1, ScaleY: 1},
		}}}).String()
		assert.False(t, strings.Contains(s, "shift_x"))
		assert.False(t, strings.Contains(s, "square_long"))
	})

	t.Run("zero value fields still render", func(t *testing.T) {
		s := (&Config{Node: []NodeConfig{{
			Calculator: "RectTransformationCalculator",
			Options:    &rectOptions{},
		}}}).String()
		assert.Contains(t, s, "scale_x: 0")
		assert.Contains(t, s, "scale_y: 0")
	})
}

func TestConfigStringRepeatedAndNested(t *testing.T) {
	s := (&Config{Node: []NodeConfig{{
		Calculator: "SplitDetectionVectorCalculator",
		Options: &splitOptions{
			Ranges:      []rangeOption{{Begin: 0, End: 1}, {Begin: 2, End: 3}},
			ElementOnly: true,
		},
	}}}).String()

	assert.Contains(t, s, `ranges {
        begin: 0
        end: 1
      }
      ranges {
        begin: 2
        end: 3
      }
      element_only: true`)
}

func TestConfigStringEnum(t *testing.T) {
	type modeOptions struct {
		ConversionMode testMode `yaml:"conversion_mode"`
	}
	s := (&Config{Node: []NodeConfig{{
		Calculator: "DetectionsToRectsCalculator",
		Options:    &modeOptions{ConversionMode: 1},
	}}}).String()
	assert.Contains(t, s, "conversion_mode: USE_KEYPOINTS")
}

func TestConfigStringBackEdge(t *testing.T) {
	s := (&Config{Node: []NodeConfig{{
		Calculator:      "PreviousLoopbackCalculator",
		InputStream:     []string{"MAIN:tick", "LOOP:loop"},
		OutputStream:    []string{"PREV_LOOP:prev"},
		InputStreamInfo: []StreamInfo{{TagIndex: "LOOP", BackEdge: true}},
	}}}).String()

	assert.Contains(t, s, `  input_stream_info {
    tag_index: "LOOP"
    back_edge: true
  }`)
}

func TestConfigYAML(t *testing.T) {
	cfg := &Config{
		Type:        "MaskSmoothingSubgraph",
		InputStream: []string{"MASK:mask_in"},
		Node: []NodeConfig{{
			Calculator:   "SegmentationSmoothingCalculator",
			InputStream:  []string{"MASK:mask_in"},
			OutputStream: []string{"SMOOTHED_MASK:mask_out"},
		}},
	}

	data, err := yaml.Marshal(cfg)
	assert.NoError(t, err)

	var back Config
	assert.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg.Type, back.Type)
	assert.Equal(t, cfg.InputStream, back.InputStream)
	assert.Equal(t, cfg.Node[0].Calculator, back.Node[0].Calculator)
}
