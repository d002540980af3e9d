package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKebab(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"count", "count"},
		{"maxCount", "max-count"},
		{"ariaLabelledBy", "aria-labelled-by"},
		{"URLValue", "url-value"},
		{"htmlID", "html-id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kebab(tt.in), tt.in)
	}
}

func TestAttributeName(t *testing.T) {
	assert.Equal(t, "max-count", NumberProp("maxCount").Descriptor().AttributeName())
	assert.Equal(t, "n", NumberProp("maxCount").WithAttribute("n").Descriptor().AttributeName())
	assert.Equal(t, "", NumberProp("maxCount").WithoutAttribute().Descriptor().AttributeName())
}

func ptr(s string) *string { return &s }

func TestDefaultConverters(t *testing.T) {
	tests := []struct {
		name  string
		desc  PropertyDescriptor
		attr  *string
		want  any
		fails bool
	}{
		{"string", StringProp("label").Descriptor(), ptr("hi"), "hi", false},
		{"absent string", StringProp("label").Descriptor(), nil, "", false},
		{"number", NumberProp("n").Descriptor(), ptr(" 4.5 "), 4.5, false},
		{"absent number", NumberProp("n").Descriptor(), nil, 0.0, false},
		{"bad number", NumberProp("n").Descriptor(), ptr("four"), nil, true},
		{"boolean text", BoolProp("on").Descriptor(), ptr("false"), true, false},
		{"boolean empty", BoolProp("on").Descriptor(), ptr(""), true, false},
		{"absent boolean", BoolProp("on").Descriptor(), nil, false, false},
		{"array", ArrayProp[int]("ids").Descriptor(), ptr("[1,2]"), []int{1, 2}, false},
		{"bad array", ArrayProp[int]("ids").Descriptor(), ptr("[1,"), nil, true},
		{"object", ObjectProp[map[string]string]("meta").Descriptor(), ptr(`{"k":"v"}`), map[string]string{"k": "v"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.desc.decode(tt.attr)
			if tt.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Nil(t, BoolProp("on").Descriptor().encode(false))
	assert.Equal(t, ptr(""), BoolProp("on").Descriptor().encode(true))
	assert.Equal(t, ptr("3"), NumberProp("n").Descriptor().encode(3.0))
	assert.Equal(t, ptr(`["a"]`), ArrayProp[string]("xs").Descriptor().encode([]string{"a"}))
	assert.Nil(t, ArrayProp[string]("xs").Descriptor().encode([]string(nil)))
}

type point struct {
	X, Y int
}

func TestCustomConverter(t *testing.T) {
	p := ObjectProp[point]("at").WithConverter(Converter[point]{
		FromAttribute: func(v *string) (point, error) {
			var pt point
			if v == nil {
				return pt, nil
			}
			xs := strings.Split(*v, ",")
			if len(xs) == 2 {
				pt.X, pt.Y = len(xs[0]), len(xs[1])
			}
			return pt, nil
		},
	})
	got, err := p.Descriptor().decode(ptr("aa,bbb"))
	require.NoError(t, err)
	assert.Equal(t, point{2, 3}, got)

	// The default encoder is kept.
	assert.Equal(t, ptr(`{"X":1,"Y":2}`), p.Descriptor().encode(point{1, 2}))
}

func TestDefaults(t *testing.T) {
	label := StringProp("label").WithDefault("none")
	doc := newDocument(t, Definition{
		Tag:        "x-labelled",
		Properties: []PropertyDescriptor{label.Descriptor()},
		New:        func() Element { return &counter{} },
	})
	el, c := mount[*counter](t, doc, "x-labelled")
	assert.Equal(t, "none", label.Get(c))

	el.SetAttribute("label", "set")
	assert.Equal(t, "set", label.Get(c))
	el.RemoveAttribute("label")
	assert.Equal(t, "", label.Get(c))
}
