package block

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Source says where a typed field is read from.
type Source int

const (
	FromField Source = iota
	FromMutation
)

func (s Source) String() string {
	if s == FromMutation {
		return "mutation"
	}
	return "field"
}

// FieldSpec describes one statically declared field of a block kind.
type FieldSpec struct {
	Name    string
	Source  Source
	Kind    string // string, int, float, bool; templates use their editor kind
	Default string
}

// FieldError reports a field whose text could not be parsed into the
// declared Go type.
type FieldError struct {
	Field string
	Value string
	Kind  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: cannot read %q as %s", e.Field, e.Value, e.Kind)
}

// Decode fills the struct pointed to by dst from b's fields and mutation.
// Struct fields are bound with `field:"NAME"` or `mutation:"NAME"` tags and
// may carry a `default:"..."` used when the editor left the value empty.
// Every bad field is reported and takes its default if it has one; good
// fields are still filled.
func Decode(b *Block, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("block.Decode: want pointer to struct, got %T", dst))
	}
	rv = rv.Elem()
	rt := rv.Type()

	var errs []error
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		spec, ok := specOf(sf)
		if !ok {
			continue
		}
		raw, found := lookup(b, spec)
		if !found || strings.TrimSpace(raw) == "" {
			if spec.Default == "" {
				continue
			}
			raw = spec.Default
		}
		if err := setValue(rv.Field(i), spec, raw); err != nil {
			errs = append(errs, err)
			if spec.Default != "" {
				_ = setValue(rv.Field(i), spec, spec.Default)
			}
		}
	}
	return errors.Join(errs...)
}

// SchemaOf lists the declared fields of a typed block struct in
// declaration order.
func SchemaOf(v any) []FieldSpec {
	rt := reflect.TypeOf(v)
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}
	specs := []FieldSpec{}
	for i := 0; i < rt.NumField(); i++ {
		if spec, ok := specOf(rt.Field(i)); ok {
			specs = append(specs, spec)
		}
	}
	return specs
}

func specOf(sf reflect.StructField) (FieldSpec, bool) {
	spec := FieldSpec{Default: sf.Tag.Get("default"), Kind: kindName(sf.Type.Kind())}
	if name, ok := sf.Tag.Lookup("field"); ok {
		spec.Name = name
		spec.Source = FromField
		return spec, true
	}
	if name, ok := sf.Tag.Lookup("mutation"); ok {
		spec.Name = name
		spec.Source = FromMutation
		return spec, true
	}
	return spec, false
}

func lookup(b *Block, spec FieldSpec) (string, bool) {
	if b == nil {
		return "", false
	}
	m := b.Fields
	if spec.Source == FromMutation {
		m = b.Mutation
	}
	v, ok := m[spec.Name]
	return v, ok
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "int"
	case reflect.Float64, reflect.Float32:
		return "float"
	case reflect.Bool:
		return "bool"
	default:
		return "string"
	}
}

func setValue(fv reflect.Value, spec FieldSpec, raw string) error {
	raw = strings.TrimSpace(raw)
	bad := &FieldError{Field: spec.Name, Value: raw, Kind: spec.Kind}
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, err := ParseInt(raw)
		if err != nil {
			return bad
		}
		fv.SetInt(n)
	case reflect.Float64, reflect.Float32:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return bad
		}
		fv.SetFloat(f)
	case reflect.Bool:
		switch strings.ToUpper(raw) {
		case "TRUE", "1", "YES", "ON":
			fv.SetBool(true)
		case "FALSE", "0", "NO", "OFF":
			fv.SetBool(false)
		default:
			return bad
		}
	default:
		panic(fmt.Sprintf("block.Decode: unsupported field type %s for %s", fv.Type(), spec.Name))
	}
	return nil
}

// ParseInt accepts decimal, 0x hex and 0b binary integers as the editor
// writes them, plus whole-valued decimals such as "5.0".
func ParseInt(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	neg := strings.HasPrefix(lower, "-")
	digits := strings.TrimPrefix(lower, "-")
	var n int64
	var err error
	switch {
	case strings.HasPrefix(digits, "0x"):
		n, err = strconv.ParseInt(digits[2:], 16, 64)
	case strings.HasPrefix(digits, "0b"):
		n, err = strconv.ParseInt(digits[2:], 2, 64)
	default:
		n, err = strconv.ParseInt(digits, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(digits, 64)
			if ferr != nil || f != float64(int64(f)) {
				return 0, err
			}
			n, err = int64(f), nil
		}
	}
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}
