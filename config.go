package vispipe

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Config is the rendered graph configuration, the sole artifact handed to
// the execution engine. Stream references use the "name", "TAG:name" or
// "TAG:index:name" grammar. The struct marshals to YAML as-is; String
// renders the canonical text form.
type Config struct {
	Type             string                  `yaml:"type,omitempty"`
	InputStream      []string                `yaml:"input_stream,omitempty"`
	OutputStream     []string                `yaml:"output_stream,omitempty"`
	InputSidePacket  []string                `yaml:"input_side_packet,omitempty"`
	OutputSidePacket []string                `yaml:"output_side_packet,omitempty"`
	Node             []NodeConfig            `yaml:"node,omitempty"`
	PacketGenerator  []PacketGeneratorConfig `yaml:"packet_generator,omitempty"`
}

// NodeConfig describes one calculator node.
type NodeConfig struct {
	Calculator       string       `yaml:"calculator"`
	InputStream      []string     `yaml:"input_stream,omitempty"`
	OutputStream     []string     `yaml:"output_stream,omitempty"`
	InputSidePacket  []string     `yaml:"input_side_packet,omitempty"`
	OutputSidePacket []string     `yaml:"output_side_packet,omitempty"`
	InputStreamInfo  []StreamInfo `yaml:"input_stream_info,omitempty"`
	Options          any          `yaml:"options,omitempty"`
}

// PacketGeneratorConfig describes one legacy packet generator.
type PacketGeneratorConfig struct {
	PacketGenerator  string   `yaml:"packet_generator"`
	InputSidePacket  []string `yaml:"input_side_packet,omitempty"`
	OutputSidePacket []string `yaml:"output_side_packet,omitempty"`
	Options          any      `yaml:"options,omitempty"`
}

// StreamInfo carries per-input-stream attributes, currently only the
// back-edge marker for feedback loops.
type StreamInfo struct {
	TagIndex string `yaml:"tag_index"`
	BackEdge bool   `yaml:"back_edge,omitempty"`
}

// String renders the canonical text form of the config:
//
//	input_stream: "IMAGE:image_in"
//	node {
//	  calculator: "GateCalculator"
//	  input_stream: "image_in"
//	  options {
//	    [stream.GateOptions] {
//	      empty_packets_as_allow: true
//	    }
//	  }
//	}
//
// Options messages render field-by-field under their Go type name: value
// fields always, pointer fields only when set, enums via their Stringer.
func (c *Config) String() string {
	var b strings.Builder
	writeStr := func(indent, field, v string) {
		b.WriteString(indent + field + ": " + strconv.Quote(v) + "\n")
	}

	if c.Type != "" {
		writeStr("", "type", c.Type)
	}
	for _, s := range c.InputStream {
		writeStr("", "input_stream", s)
	}
	for _, s := range c.OutputStream {
		writeStr("", "output_stream", s)
	}
	for _, s := range c.InputSidePacket {
		writeStr("", "input_side_packet", s)
	}
	for _, s := range c.OutputSidePacket {
		writeStr("", "output_side_packet", s)
	}
	for _, n := range c.Node {
		b.WriteString("node {\n")
		writeStr("  ", "calculator", n.Calculator)
		for _, s := range n.InputStream {
			writeStr("  ", "input_stream", s)
		}
		for _, s := range n.OutputStream {
			writeStr("  ", "output_stream", s)
		}
		for _, s := range n.InputSidePacket {
			writeStr("  ", "input_side_packet", s)
		}
		for _, s := range n.OutputSidePacket {
			writeStr("  ", "output_side_packet", s)
		}
		for _, si := range n.InputStreamInfo {
			b.WriteString("  input_stream_info {\n")
			writeStr("    ", "tag_index", si.TagIndex)
			if si.BackEdge {
				b.WriteString("    back_edge: true\n")
			}
			b.WriteString("  }\n")
		}
		writeOptionsBlock(&b, "  ", n.Options)
		b.WriteString("}\n")
	}
	for _, p := range c.PacketGenerator {
		b.WriteString("packet_generator {\n")
		writeStr("  ", "packet_generator", p.PacketGenerator)
		for _, s := range p.InputSidePacket {
			writeStr("  ", "input_side_packet", s)
		}
		for _, s := range p.OutputSidePacket {
			writeStr("  ", "output_side_packet", s)
		}
		writeOptionsBlock(&b, "  ", p.Options)
		b.WriteString("}\n")
	}
	return b.String()
}

func writeOptionsBlock(b *strings.Builder, indent string, opts any) {
	if opts == nil {
		return
	}
	v := reflect.ValueOf(opts)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	b.WriteString(indent + "options {\n")
	b.WriteString(indent + "  [" + strings.TrimPrefix(fmt.Sprintf("%T", opts), "*") + "] {\n")
	writeMessage(b, indent+"    ", v)
	b.WriteString(indent + "  }\n")
	b.WriteString(indent + "}\n")
}

// writeMessage renders a struct's fields using their yaml tag names. Value
// fields are always present, nil pointers are omitted, slices repeat the
// field, nested structs open sub-blocks.
func writeMessage(b *strings.Builder, indent string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		writeField(b, indent, name, fv)
	}
}

func writeField(b *strings.Builder, indent, name string, v reflect.Value) {
	if s, ok := v.Interface().(fmt.Stringer); ok {
		b.WriteString(indent + name + ": " + s.String() + "\n")
		return
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			ev := v.Index(i)
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
			}
			writeField(b, indent, name, ev)
		}
	case reflect.Struct:
		b.WriteString(indent + name + " {\n")
		writeMessage(b, indent+"  ", v)
		b.WriteString(indent + "}\n")
	case reflect.String:
		b.WriteString(indent + name + ": " + strconv.Quote(v.String()) + "\n")
	case reflect.Bool:
		b.WriteString(indent + name + ": " + strconv.FormatBool(v.Bool()) + "\n")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(indent + name + ": " + strconv.FormatInt(v.Int(), 10) + "\n")
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.WriteString(indent + name + ": " + strconv.FormatUint(v.Uint(), 10) + "\n")
	case reflect.Float32:
		b.WriteString(indent + name + ": " + strconv.FormatFloat(v.Float(), 'g', -1, 32) + "\n")
	case reflect.Float64:
		b.WriteString(indent + name + ": " + strconv.FormatFloat(v.Float(), 'g', -1, 64) + "\n")
	default:
		b.WriteString(indent + name + ": " + fmt.Sprintf("%v", v.Interface()) + "\n")
	}
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("yaml")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}
