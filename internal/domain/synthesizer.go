package domain

import (
	"fmt"
	"reflect"

	"stunt.dev/pkg/stunt/double"
	m "stunt.dev/pkg/stunt/internal/model"
)

// SynthArg is one synthesized argument: the name it answers to, the double
// standing behind it, and the typed value to pass. Variadic slots carry an
// empty pack and no double.
type SynthArg struct {
	Name     string
	Receiver bool
	Variadic bool
	Double   *double.Double
	Value    reflect.Value
}

// ArgumentSynthesizer builds the argument list a target is invoked with:
// the receiver stand-in first for method expressions, then one double per
// declared parameter.
type ArgumentSynthesizer interface {
	Synthesize(analysis m.Analysis, typ reflect.Type, factory double.Factory) ([]SynthArg, error)
}

// ReflectSynthesizer is the concrete ArgumentSynthesizer.
type ReflectSynthesizer struct{}

// NewReflectSynthesizer constructs a ReflectSynthesizer.
func NewReflectSynthesizer() *ReflectSynthesizer {
	return &ReflectSynthesizer{}
}

// Synthesize builds the receiver-first argument list for the analyzed
// callable.
func (s *ReflectSynthesizer) Synthesize(analysis m.Analysis, typ reflect.Type, factory double.Factory) ([]SynthArg, error) {
	if typ == nil || typ.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s is not a callable type", m.ErrAnalysisUnavailable, analysis.ID.Symbol)
	}

	var out []SynthArg

	offset := 0

	if analysis.Sig.ReceiverKind != m.ReceiverNone {
		if typ.NumIn() == 0 {
			return nil, fmt.Errorf("%w: %s resolves to a method expression but takes no arguments", m.ErrAmbiguousReceiver, analysis.ID.Symbol)
		}

		name := analysis.Sig.Receiver
		if name == "" {
			name = "recv"
		}

		d, err := factory.Make(analysis.ID.Dotted()+"."+name, typ.In(0), nil)
		if err != nil {
			return nil, fmt.Errorf("synthesize receiver for %s: %w", analysis.ID.Dotted(), err)
		}

		out = append(out, SynthArg{Name: name, Receiver: true, Double: d, Value: d.ReflectValue()})
		offset = 1
	}

	declared := len(analysis.Sig.Params)
	available := typ.NumIn() - offset

	if declared != available {
		return nil, fmt.Errorf("%w: %s declares %d parameters but its value takes %d", m.ErrAmbiguousReceiver, analysis.ID.Symbol, declared, available)
	}

	for i := 0; i < available; i++ {
		param := analysis.Sig.Params[i]

		name := param.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}

		slot := typ.In(offset + i)

		// Variadic packs stay empty: the target sees zero trailing values.
		if param.Variadic {
			out = append(out, SynthArg{Name: name, Variadic: true, Value: reflect.MakeSlice(slot, 0, 0)})
			continue
		}

		d, err := factory.Make(analysis.ID.Dotted()+"."+name, slot, nil)
		if err != nil {
			return nil, fmt.Errorf("synthesize argument %s for %s: %w", name, analysis.ID.Dotted(), err)
		}

		out = append(out, SynthArg{Name: name, Double: d, Value: d.ReflectValue()})
	}

	return out, nil
}
