package hook

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/forPelevin/bvs/internal/types"
	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	Rules []struct {
		Label    string   `yaml:"label"`
		Contains []string `yaml:"contains"`
	} `yaml:"rules"`
}

// LoadRules reads a YAML rule table. The table replaces the defaults
// wholesale and keeps file order:
//
//	rules:
//	  - label: question
//	    contains: ["？", "?"]
func LoadRules(r io.Reader) (Rules, error) {
	var f rulesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("rules: empty document")
		}
		return nil, fmt.Errorf("rules: decode: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, errors.New("rules: no rules defined")
	}

	out := make(Rules, 0, len(f.Rules))
	for i, fr := range f.Rules {
		label := types.HookType(fr.Label)
		if !label.Valid() || label == types.HookNone || label == types.HookUnknown {
			return nil, fmt.Errorf("rules[%d]: unsupported label %q", i, fr.Label)
		}
		if len(fr.Contains) == 0 {
			return nil, fmt.Errorf("rules[%d]: contains is empty", i)
		}
		out = append(out, Rule{Label: label, Match: ContainsAny(fr.Contains...)})
	}
	return out, nil
}

func LoadRulesFile(path string) (Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs, err := LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}
