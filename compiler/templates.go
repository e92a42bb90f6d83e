package compiler

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtinTemplates []byte

// Template is a block kind described by data instead of code: its inputs,
// the table entries it contributes and the code it expands to. Every text
// may refer to inputs as {{NAME}}.
type Template struct {
	Type       string          `yaml:"type"`
	Output     string          `yaml:"output,omitempty"` // "statement" (default) or "value"
	Order      string          `yaml:"order,omitempty"`  // precedence of a value template
	Feature    string          `yaml:"feature,omitempty"`
	Requires   *Requirement    `yaml:"requires,omitempty"`
	Fields     []TemplateField `yaml:"fields,omitempty"`
	Values     []TemplateValue `yaml:"values,omitempty"`
	Statements []string        `yaml:"statements,omitempty"`
	Includes   []string        `yaml:"includes,omitempty"`
	Globals    []Entry         `yaml:"globals,omitempty"`
	Setups     []Entry         `yaml:"setups,omitempty"`
	Methods    []Method        `yaml:"methods,omitempty"`
	Helper     string          `yaml:"helper,omitempty"`
	Returns    string          `yaml:"returns,omitempty"`
	Code       string          `yaml:"code"`
}

// Requirement names the blocks that must be enabled somewhere in the
// workspace before the template may emit its call.
type Requirement struct {
	Types []string `yaml:"types"`
	Label string   `yaml:"label"`
}

// TemplateField is a field typed in the editor.
type TemplateField struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"` // pin, adc, number, text, dropdown, variable, color
	Default string   `yaml:"default,omitempty"`
	Options []string `yaml:"options,omitempty"`
	Min     *int64   `yaml:"min,omitempty"`
	Max     *int64   `yaml:"max,omitempty"`
}

// TemplateValue is a plugged-in expression.
type TemplateValue struct {
	Name    string `yaml:"name"`
	Order   string `yaml:"order,omitempty"`
	Default string `yaml:"default,omitempty"`
	Min     *int64 `yaml:"min,omitempty"`
	Max     *int64 `yaml:"max,omitempty"`
}

// Entry is one keyed line for the globals or setups table.
type Entry struct {
	Key  string `yaml:"key"`
	Code string `yaml:"code"`
}

// Method is a helper function with its forward declaration.
type Method struct {
	Key  string `yaml:"key"`
	Decl string `yaml:"decl"`
	Body string `yaml:"body"`
}

var fieldKinds = map[string]bool{
	"pin": true, "adc": true, "number": true, "text": true, "dropdown": true, "variable": true, "color": true,
}

var returnKinds = map[string]types.Kind{
	"int":          types.Int,
	"float":        types.Float,
	"char":         types.Char,
	"char pointer": types.CharPtr,
	"boolean":      types.Bool,
}

// ParseTemplates reads a YAML list of templates.
func ParseTemplates(data []byte) ([]*Template, error) {
	var ts []*Template
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return ts, nil
}

// LoadTemplates parses and registers every template in data.
func (r *Registry) LoadTemplates(data []byte) error {
	ts, err := ParseTemplates(data)
	if err != nil {
		return err
	}
	for _, t := range ts {
		if err := r.RegisterTemplate(t); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTemplate validates t and installs a generator for it. A marker
// naming no input is rejected here rather than at generation time.
func (r *Registry) RegisterTemplate(t *Template) error {
	if t == nil {
		return fmt.Errorf("empty template")
	}
	if err := ValidateKindName(t.Type); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	value := false
	switch t.Output {
	case "", "statement":
	case "value":
		value = true
	default:
		return fmt.Errorf("template %s: unknown output %q", t.Type, t.Output)
	}
	order := token.ATOMIC
	if t.Order != "" {
		o, ok := token.LookupOrder(t.Order)
		if !ok {
			return fmt.Errorf("template %s: unknown order %q", t.Type, t.Order)
		}
		order = o
	}
	inputs := map[string]bool{}
	specs := []block.FieldSpec{}
	for _, f := range t.Fields {
		if !fieldKinds[f.Kind] {
			return fmt.Errorf("template %s: field %s has unknown kind %q", t.Type, f.Name, f.Kind)
		}
		if f.Kind == "dropdown" && len(f.Options) == 0 {
			return fmt.Errorf("template %s: dropdown %s has no options", t.Type, f.Name)
		}
		inputs[f.Name] = true
		specs = append(specs, block.FieldSpec{Name: f.Name, Source: block.FromField, Kind: f.Kind, Default: f.Default})
	}
	for _, v := range t.Values {
		if v.Order != "" {
			if _, ok := token.LookupOrder(v.Order); !ok {
				return fmt.Errorf("template %s: value %s has unknown order %q", t.Type, v.Name, v.Order)
			}
		}
		inputs[v.Name] = true
	}
	for _, s := range t.Statements {
		inputs[s] = true
	}
	texts := []string{t.Code}
	for _, e := range t.Globals {
		texts = append(texts, e.Key, e.Code)
	}
	for _, e := range t.Setups {
		texts = append(texts, e.Key, e.Code)
	}
	for _, m := range t.Methods {
		texts = append(texts, m.Key, m.Decl, m.Body)
	}
	for _, text := range texts {
		_, missing := Expand(text, func(key string) (string, bool) {
			return "", inputs[key] || strings.HasPrefix(key, lenPrefix)
		})
		if len(missing) > 0 {
			return fmt.Errorf("template %s: unknown input %s", t.Type, missing[0])
		}
	}
	if t.Helper != "" {
		kind, ok := returnKinds[t.Returns]
		if !ok {
			return fmt.Errorf("template %s: helper %s has unknown return type %q", t.Type, t.Helper, t.Returns)
		}
		r.Helper(t.Helper, kind)
	}

	r.Register(Kind{Type: t.Type, Value: value, Fields: specs, Source: "template"}, func(g *Generator, b *block.Block) Fragment {
		code, ok := g.expandTemplate(t, b)
		if !value {
			return Stmt(code)
		}
		if !ok {
			return Expr(commentValue("0", code), token.ATOMIC)
		}
		return Expr(code, order)
	})
	return nil
}

// expandTemplate renders t for b. On failure the result is the comment
// that replaces the block and ok is false; no table is touched then.
func (g *Generator) expandTemplate(t *Template, b *block.Block) (string, bool) {
	if c, ok := g.Feature(b, t.Feature); !ok {
		return c, false
	}
	if t.Requires != nil {
		if c, ok := g.Companion(b, t.Requires.Label, t.Requires.Types...); !ok {
			return c, false
		}
	}

	inputs := map[string]string{}
	for _, f := range t.Fields {
		text, fail, ok := g.templateField(b, f)
		if !ok {
			return fail, false
		}
		inputs[f.Name] = text
	}
	for _, v := range t.Values {
		inputs[v.Name] = g.templateValue(b, v)
	}
	for _, s := range t.Statements {
		inputs[s] = bodyLines(g.StatementToCode(b, s))
	}
	expand := func(s string) string {
		out, _ := Expand(s, func(key string) (string, bool) {
			v, ok := inputs[key]
			return v, ok
		})
		return out
	}

	for _, h := range t.Includes {
		g.AddInclude(h)
	}
	for _, e := range t.Globals {
		g.Globals.Put(expand(e.Key), expand(e.Code))
	}
	for _, e := range t.Setups {
		g.Setups.Put(expand(e.Key), expand(e.Code))
	}
	for _, m := range t.Methods {
		g.AddMethod(expand(m.Key), expand(m.Decl), strings.TrimRight(expand(m.Body), "\n"))
	}
	return expand(t.Code), true
}

func (g *Generator) templateField(b *block.Block, f TemplateField) (text, fail string, ok bool) {
	raw := strings.TrimSpace(b.Fields[f.Name])
	if raw == "" {
		raw = f.Default
	}
	if raw == "" && f.Kind == "dropdown" {
		raw = f.Options[0]
	}
	switch f.Kind {
	case "pin":
		n, err := block.ParseInt(raw)
		if err != nil {
			return "", g.Fail(b, diag.BadField, "%s is not a pin number: %q", f.Name, raw), false
		}
		if c, ok := g.Pin(b, int(n)); !ok {
			return "", c, false
		}
		return strconv.FormatInt(n, 10), "", true
	case "adc":
		n, err := block.ParseInt(raw)
		if err != nil {
			return "", g.Fail(b, diag.BadField, "%s is not an ADC channel: %q", f.Name, raw), false
		}
		if !g.Board.HasADC(int(n)) {
			return "", g.Fail(b, diag.Unsupported, "ADC channel %d is not available on %s", n, g.Board.Name), false
		}
		return strconv.FormatInt(n, 10), "", true
	case "number":
		if n, err := block.ParseInt(raw); err == nil {
			if f.Min != nil && f.Max != nil {
				n = g.ClampField(b, f.Name, n, Range{Min: *f.Min, Max: *f.Max})
			}
			return strconv.FormatInt(n, 10), "", true
		}
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return raw, "", true
		}
		g.Report(b, diag.BadField, diag.Warning, "%s is not a number: %q, using 0", f.Name, raw)
		return "0", "", true
	case "text":
		return quoteC(raw), "", true
	case "dropdown":
		for _, o := range f.Options {
			if o == raw {
				return raw, "", true
			}
		}
		def := f.Options[0]
		if f.Default != "" {
			def = f.Default
		}
		g.Report(b, diag.BadField, diag.Warning, "%s has no option %q, using %s", f.Name, raw, def)
		return def, "", true
	case "variable":
		if raw == "" {
			return "", g.Warn(b, diag.BadField, "%s has no variable selected", f.Name), false
		}
		name := varName(raw)
		if _, ok := g.Vars.Get(name); !ok {
			g.declareVar(g.Vars.Use(name))
		}
		return name, "", true
	case "color":
		return colorLiteral(g, b, f.Name, raw), "", true
	}
	return raw, "", true
}

func (g *Generator) templateValue(b *block.Block, v TemplateValue) string {
	fallback := v.Default
	if fallback == "" {
		fallback = "0"
	}
	if v.Min != nil && v.Max != nil {
		return g.ValueInRange(b, v.Name, Range{Min: *v.Min, Max: *v.Max}, fallback)
	}
	order := token.NONE
	if v.Order != "" {
		order, _ = token.LookupOrder(v.Order)
	}
	return g.ValueOr(b, v.Name, order, fallback)
}

// colorLiteral turns "#rrggbb" into a C hex constant.
func colorLiteral(g *Generator, b *block.Block, field, raw string) string {
	hex := strings.TrimPrefix(raw, "#")
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil || len(hex) != 6 {
		g.Report(b, diag.BadField, diag.Warning, "%s is not a color: %q", field, raw)
		return "0x000000"
	}
	return "0x" + strings.ToUpper(hex)
}
