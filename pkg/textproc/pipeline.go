package textproc

import (
	"errors"
	"fmt"
)

// StageConfig names a processor and one of its options. It is the unit of
// pipeline configuration files and API requests.
type StageConfig struct {
	Processor string `yaml:"processor" json:"processor"`
	Option    string `yaml:"option" json:"option"`
}

func (c StageConfig) String() string { return c.Processor + "=" + c.Option }

// Pipeline is an ordered list of stages applied left to right.
type Pipeline []Stage

// NewPipeline resolves cfg against descs. Unknown processors and options are
// reported together.
func NewPipeline(descs []Descriptor, cfg []StageConfig) (Pipeline, error) {
	p := make(Pipeline, 0, len(cfg))
	var errs []error
	for _, c := range cfg {
		d, ok := find(descs, c.Processor)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownProcessor, c.Processor))
			continue
		}
		st, err := d.Bind(c.Option)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p = append(p, st)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return p, nil
}

// Run applies every stage in order.
func (p Pipeline) Run(text string) string {
	for _, s := range p {
		text = s.Run(text)
	}
	return text
}

// Config returns the configuration that rebuilds p.
func (p Pipeline) Config() []StageConfig {
	out := make([]StageConfig, len(p))
	for i, s := range p {
		out[i] = s.Config()
	}
	return out
}

// Variant is one distinct text produced by Variants, with the stages that
// changed the text on the way.
type Variant struct {
	Text  string        `json:"text"`
	Steps []StageConfig `json:"steps,omitempty"`
}

// Variants applies every option of every descriptor in sequence and returns
// each distinct resulting text once, with the first option path that
// produced it. The unmodified text is always first. A positive limit caps
// the number of variants kept at each level.
func Variants(text string, descs []Descriptor, limit int) []Variant {
	current := []Variant{{Text: text}}
	for _, d := range descs {
		stages := d.Stages()
		seen := make(map[string]struct{}, len(current)*len(stages))
		next := make([]Variant, 0, len(current)*len(stages))
	expand:
		for _, v := range current {
			for _, st := range stages {
				if limit > 0 && len(next) >= limit {
					break expand
				}
				out := st.Run(v.Text)
				if _, dup := seen[out]; dup {
					continue
				}
				seen[out] = struct{}{}
				steps := v.Steps
				if out != v.Text {
					steps = append(steps[:len(steps):len(steps)], st.Config())
				}
				next = append(next, Variant{Text: out, Steps: steps})
			}
		}
		current = next
	}
	return current
}

func find(descs []Descriptor, id string) (Descriptor, bool) {
	for _, d := range descs {
		if d.Info().ID == id {
			return d, true
		}
	}
	return nil, false
}
