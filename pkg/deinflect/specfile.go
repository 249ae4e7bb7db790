package deinflect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// specFile is the YAML layout of a rule file.
type specFile struct {
	Language   string          `yaml:"language"`
	Conditions []conditionFile `yaml:"conditions"`
	Transforms []transformFile `yaml:"transforms"`
}

type conditionFile struct {
	Tag            string   `yaml:"tag"`
	Name           string   `yaml:"name"`
	DictionaryForm bool     `yaml:"dictionary_form"`
	SubConditions  []string `yaml:"sub_conditions"`
}

type transformFile struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Rules       []ruleFile `yaml:"rules"`
}

type ruleFile struct {
	Type          string   `yaml:"type"`
	Inflected     string   `yaml:"inflected"`
	Deinflected   string   `yaml:"deinflected"`
	ConditionsIn  []string `yaml:"conditions_in"`
	ConditionsOut []string `yaml:"conditions_out"`
	Lookaround    bool     `yaml:"lookaround"`
	Custom        string   `yaml:"custom"`
}

// ParseSpec decodes a YAML rule file. Patterns and conditions are checked
// later, by Build.
func ParseSpec(data []byte) (LanguageSpec, error) {
	var f specFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return LanguageSpec{}, fmt.Errorf("parse rule file: %w", err)
	}
	spec := LanguageSpec{Language: f.Language}
	for _, c := range f.Conditions {
		spec.Conditions = append(spec.Conditions, ConditionDef(c))
	}
	for _, tf := range f.Transforms {
		if tf.Name == "" {
			return LanguageSpec{}, fmt.Errorf("rule file: transform without name")
		}
		ts := TransformSpec{Name: tf.Name, Description: tf.Description}
		for i, rf := range tf.Rules {
			rt, err := ParseRuleType(rf.Type)
			if err != nil {
				return LanguageSpec{}, fmt.Errorf("transform %q rule %d: %w", tf.Name, i, err)
			}
			if rf.Type == "" && rf.Custom != "" {
				rt = Other
			}
			ts.Rules = append(ts.Rules, RuleSpec{
				Type:          rt,
				Inflected:     rf.Inflected,
				Deinflected:   rf.Deinflected,
				ConditionsIn:  rf.ConditionsIn,
				ConditionsOut: rf.ConditionsOut,
				Lookaround:    rf.Lookaround,
				CustomName:    rf.Custom,
			})
		}
		spec.Transforms = append(spec.Transforms, ts)
	}
	return spec, nil
}

// LoadSpecFile reads and parses a YAML rule file.
func LoadSpecFile(path string) (LanguageSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LanguageSpec{}, fmt.Errorf("read rule file %s: %w", path, err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		return LanguageSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// LoadTable builds the Japanese table extended with the given rule files,
// in order.
func LoadTable(paths ...string) (*Table, error) {
	spec := JapaneseSpec()
	for _, p := range paths {
		ext, err := LoadSpecFile(p)
		if err != nil {
			return nil, err
		}
		spec = spec.Extend(ext)
	}
	return Build(spec)
}
