package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/voxtrack/pkg/kernel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites shape-script source into something zygomys
// accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so builtins can
//     take keyword arguments without keywords being bound as globals.
//  2. kebab-case identifiers become snake_case (inner-radius ->
//     inner_radius), since zygomys reads the hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are copied untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)
	b := source
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			j := skipString(b, i)
			out.WriteString(b[i:j])
			i = j
		case c == ';':
			for i < len(b) && b[i] == ';' {
				i++
			}
			j := i
			for j < len(b) && b[j] != '\n' {
				j++
			}
			out.WriteString("//")
			out.WriteString(b[i:j])
			i = j
		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			fmt.Fprintf(&out, "%q", kwPrefix+b[i+1:j])
			i = j
		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipString returns the index just past the string literal starting at
// b[i]. Double-quoted literals honour backslash escapes; backtick literals
// are raw. An unterminated literal runs to the end of the source.
func skipString(b string, i int) int {
	quote := b[i]
	j := i + 1
	for j < len(b) && b[j] != quote {
		if quote == '"' && b[j] == '\\' {
			j++
		}
		j++
	}
	return min(j+1, len(b))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid wraps a kernel.Solid so scripts can bind, combine and return it.
type sexpSolid struct {
	solid kernel.Solid
	desc  string
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string { return s.desc }
func (s *sexpSolid) Type() *zygo.RegisteredType            { return nil }

// sexpVec3 is a triple of numbers, used for offsets and angles.
type sexpVec3 struct {
	x, y, z float64
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.x, v.y, v.z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. A
// trailing keyword without a value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	pa := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			pa.kw[name] = args[i+1]
			i++
		} else {
			pa.kw[name] = zygo.SexpNull
		}
	}
	return pa
}

// number returns the keyword argument key, or else the positional argument
// at index pos.
func (pa kwArgs) number(key string, pos int) (float64, error) {
	if v, ok := pa.kw[key]; ok {
		return toFloat64(v)
	}
	if pos < len(pa.positional) {
		return toFloat64(pa.positional[pos])
	}
	return 0, fmt.Errorf("missing %s", key)
}

// positive is number restricted to values > 0.
func (pa kwArgs) positive(key string, pos int) (float64, error) {
	f, err := pa.number(key, pos)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %g", key, f)
	}
	return f, nil
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts the kernel solid from a sexpSolid.
func toSolid(s zygo.Sexp) (*sexpSolid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (*sexpVec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// vectorArg reads a vector given either as the keyword key holding a vec3
// or as three positional numbers starting at pos.
func (pa kwArgs) vectorArg(key string, pos int) (*sexpVec3, error) {
	if v, ok := pa.kw[key]; ok {
		return toVec3(v)
	}
	if pos < len(pa.positional) {
		if v, ok := pa.positional[pos].(*sexpVec3); ok {
			return v, nil
		}
	}
	if len(pa.positional) < pos+3 {
		return nil, fmt.Errorf("expected :%s vec3 or three numbers", key)
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := toFloat64(pa.positional[pos+i])
		if err != nil {
			return nil, err
		}
		xyz[i] = f
	}
	return &sexpVec3{x: xyz[0], y: xyz[1], z: xyz[2]}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the shape builtins into a zygomys environment.
// Every builtin builds solids through k.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, k kernel.Kernel) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		v, err := parseArgs(args).vectorArg("xyz", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return v, nil
	})

	// (box 10 20 30) or (box :x 10 :y 20 :z 30)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var size [3]float64
		for i, key := range []string{"x", "y", "z"} {
			f, err := pa.positive(key, i)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %w", err)
			}
			size[i] = f
		}
		return &sexpSolid{
			solid: k.Box(size[0], size[1], size[2]),
			desc:  fmt.Sprintf("(box %g %g %g)", size[0], size[1], size[2]),
		}, nil
	})

	// (sphere 5) or (sphere :radius 5)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r, err := parseArgs(args).positive("radius", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpSolid{solid: k.Sphere(r), desc: fmt.Sprintf("(sphere %g)", r)}, nil
	})

	// (cylinder :height 10 :radius 3), axis along Z
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		h, err := pa.positive("height", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		r, err := pa.positive("radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpSolid{solid: k.Cylinder(h, r), desc: fmt.Sprintf("(cylinder %g %g)", h, r)}, nil
	})

	// (union a b ...), (intersection a b ...), (difference a b ...)
	booleans := map[string]func(a, b kernel.Solid) kernel.Solid{
		"union":        k.Union,
		"intersection": k.Intersection,
		"difference":   k.Difference,
	}
	for op, combine := range booleans {
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d", name, len(args))
			}
			acc, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: operand 1: %w", name, err)
			}
			result := acc.solid
			descs := []string{acc.desc}
			for i, arg := range args[1:] {
				s, err := toSolid(arg)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: operand %d: %w", name, i+2, err)
				}
				result = combine(result, s.solid)
				descs = append(descs, s.desc)
			}
			return &sexpSolid{solid: result, desc: "(" + name + " " + strings.Join(descs, " ") + ")"}, nil
		})
	}

	// (translate s 1 2 3) or (translate s :by (vec3 1 2 3))
	// (rotate s 0 0 90) or (rotate s :by (vec3 0 0 90)), Euler angles in degrees
	transforms := map[string]func(s kernel.Solid, x, y, z float64) kernel.Solid{
		"translate": k.Translate,
		"rotate":    k.Rotate,
	}
	for op, apply := range transforms {
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) < 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid as first argument", name)
			}
			s, err := toSolid(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			v, err := pa.vectorArg("by", 1)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &sexpSolid{
				solid: apply(s.solid, v.x, v.y, v.z),
				desc:  fmt.Sprintf("(%s %s %g %g %g)", name, s.desc, v.x, v.y, v.z),
			}, nil
		})
	}
}
