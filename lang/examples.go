package lang

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Example is a few-shot example: the code around a {{cursor}} marker and the
// expected model output.
type Example struct {
	Example     string `yaml:"example"`
	Response    string `yaml:"response"`
	TriggerType string `yaml:"trigger_type,omitempty"`
}

type exampleBank struct {
	Completion []Example `yaml:"completion"`
	Generation []Example `yaml:"generation"`
}

func (c *Catalog) loadExamples(data []byte) error {
	var banks map[string]exampleBank
	if err := yaml.Unmarshal(data, &banks); err != nil {
		return fmt.Errorf("decode examples: %w", err)
	}
	for name, bank := range banks {
		l, ok := c.byName[name]
		if !ok {
			return fmt.Errorf("examples reference unknown language %q", name)
		}
		l.completionExamples = bank.Completion
		l.generationExamples = bank.Generation
	}
	return nil
}
