package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Type is the declared type of a property. It selects the default
// attribute converter.
type Type int

const (
	// String properties mirror the attribute text. An absent attribute reads
	// as the empty string.
	String Type = iota + 1
	// Number properties parse the attribute as a float64.
	Number
	// Boolean properties use presence semantics: any attribute value reads
	// as true, an absent attribute as false.
	Boolean
	// Array properties hold a JSON array.
	Array
	// Object properties hold a JSON object.
	Object
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Converter maps between an attribute and a typed property value. A nil
// attribute means absent.
type Converter[T any] struct {
	FromAttribute func(value *string) (T, error)
	ToAttribute   func(v T) *string
}

// PropertyDescriptor is the untyped schema entry of a property, as consumed
// by the lifecycle layer. Build descriptors with the typed Prop helpers.
type PropertyDescriptor struct {
	Name string
	// Attribute overrides the attribute name derived from Name.
	Attribute string
	// NoAttribute detaches the property from any attribute.
	NoAttribute bool
	Type        Type
	// Reflect mirrors property writes back to the attribute.
	Reflect bool
	Default any

	decode func(value *string) (any, error)
	encode func(v any) *string
}

// AttributeName returns the attribute bound to the property, or "" when the
// property has none.
func (d PropertyDescriptor) AttributeName() string {
	switch {
	case d.NoAttribute:
		return ""
	case d.Attribute != "":
		return d.Attribute
	default:
		return Kebab(d.Name)
	}
}

// Prop is a typed handle on a declared property. The handle is a value;
// the With methods return modified copies.
//
//	var count = core.NumberProp("count")
//
//	func (c *Counter) Increment() { count.Set(c, count.Get(c)+1) }
type Prop[T any] struct {
	desc PropertyDescriptor
	conv Converter[T]
}

func newProp[T any](name string, typ Type, conv Converter[T]) Prop[T] {
	var zero T
	p := Prop[T]{
		desc: PropertyDescriptor{Name: name, Type: typ, Default: zero},
		conv: conv,
	}
	return p.bind()
}

// bind refreshes the untyped converters after the handle was modified.
func (p Prop[T]) bind() Prop[T] {
	conv := p.conv
	p.desc.decode = func(value *string) (any, error) {
		return conv.FromAttribute(value)
	}
	p.desc.encode = func(v any) *string {
		t, _ := v.(T)
		return conv.ToAttribute(t)
	}
	return p
}

// StringProp declares a string property.
func StringProp(name string) Prop[string] {
	return newProp(name, String, Converter[string]{
		FromAttribute: func(value *string) (string, error) {
			if value == nil {
				return "", nil
			}
			return *value, nil
		},
		ToAttribute: func(v string) *string { return &v },
	})
}

// NumberProp declares a numeric property.
func NumberProp(name string) Prop[float64] {
	return newProp(name, Number, Converter[float64]{
		FromAttribute: func(value *string) (float64, error) {
			if value == nil || strings.TrimSpace(*value) == "" {
				return 0, nil
			}
			return strconv.ParseFloat(strings.TrimSpace(*value), 64)
		},
		ToAttribute: func(v float64) *string {
			s := strconv.FormatFloat(v, 'f', -1, 64)
			return &s
		},
	})
}

// BoolProp declares a boolean property.
func BoolProp(name string) Prop[bool] {
	return newProp(name, Boolean, Converter[bool]{
		FromAttribute: func(value *string) (bool, error) {
			return value != nil, nil
		},
		ToAttribute: func(v bool) *string {
			if !v {
				return nil
			}
			empty := ""
			return &empty
		},
	})
}

// ArrayProp declares a property holding a JSON array of E.
func ArrayProp[E any](name string) Prop[[]E] {
	return newProp(name, Array, jsonConverter[[]E]())
}

// ObjectProp declares a property holding a JSON object decoded into T.
func ObjectProp[T any](name string) Prop[T] {
	return newProp(name, Object, jsonConverter[T]())
}

func jsonConverter[T any]() Converter[T] {
	return Converter[T]{
		FromAttribute: func(value *string) (T, error) {
			var v T
			if value == nil || *value == "" {
				return v, nil
			}
			if err := json.Unmarshal([]byte(*value), &v); err != nil {
				return v, fmt.Errorf("invalid JSON: %w", err)
			}
			return v, nil
		},
		ToAttribute: func(v T) *string {
			data, err := json.Marshal(v)
			if err != nil || string(data) == "null" {
				return nil
			}
			s := string(data)
			return &s
		},
	}
}

// Reflected returns a copy of p that mirrors writes to its attribute.
func (p Prop[T]) Reflected() Prop[T] {
	p.desc.Reflect = true
	return p
}

// WithAttribute returns a copy of p bound to attribute name.
func (p Prop[T]) WithAttribute(name string) Prop[T] {
	p.desc.Attribute = name
	p.desc.NoAttribute = false
	return p
}

// WithoutAttribute returns a copy of p that no attribute updates.
func (p Prop[T]) WithoutAttribute() Prop[T] {
	p.desc.NoAttribute = true
	return p
}

// WithConverter returns a copy of p using conv. Missing functions keep the
// type's default.
func (p Prop[T]) WithConverter(conv Converter[T]) Prop[T] {
	if conv.FromAttribute != nil {
		p.conv.FromAttribute = conv.FromAttribute
	}
	if conv.ToAttribute != nil {
		p.conv.ToAttribute = conv.ToAttribute
	}
	return p.bind()
}

// WithDefault returns a copy of p with an initial value.
func (p Prop[T]) WithDefault(v T) Prop[T] {
	p.desc.Default = v
	return p
}

// Name returns the property name.
func (p Prop[T]) Name() string { return p.desc.Name }

// Descriptor returns the schema entry for Definition.Properties.
func (p Prop[T]) Descriptor() PropertyDescriptor { return p.desc }

// Get returns the current value of the property on e.
func (p Prop[T]) Get(e Element) T {
	v, _ := e.component().props.Get(p.desc.Name)
	t, _ := v.(T)
	return t
}

// Set assigns v to the property on e. Equal values are ignored; otherwise
// the value is stored, reflected when configured, and a render is
// requested.
func (p Prop[T]) Set(e Element, v T) {
	c := e.component()
	desc, ok := c.byName[p.desc.Name]
	if !ok {
		desc = p.desc
	}
	c.setProperty(desc, v)
}

// Kebab converts a camelCase property name to its attribute form:
// "maxCount" becomes "max-count".
func Kebab(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
