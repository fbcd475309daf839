// Package resources maps questions to official government link bundles.
package resources

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/societydesk/actbot/internal/model"
)

//go:embed bundles.yaml
var bundlesYAML []byte

type taggedBundle struct {
	Key      string               `yaml:"key"`
	Title    string               `yaml:"title"`
	Keywords []string             `yaml:"keywords"`
	Links    []model.ResourceLink `yaml:"links"`
}

type bundleFile struct {
	Bundles []taggedBundle `yaml:"bundles"`
}

// generalKey names the catch-all bundle appended when nothing else matched.
const generalKey = "general"

// Matcher scores questions against keyword-tagged link bundles. The bundle
// table is loaded once and immutable for the process lifetime.
type Matcher struct {
	bundles []taggedBundle
	general *taggedBundle
}

// Load parses the embedded bundle table. Bundles keep file order, which is
// also evaluation order.
func Load() (*Matcher, error) {
	var f bundleFile
	if err := yaml.Unmarshal(bundlesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse bundle table: %w", err)
	}
	m := &Matcher{}
	for i := range f.Bundles {
		b := f.Bundles[i]
		if b.Key == generalKey {
			m.general = &f.Bundles[i]
			continue
		}
		m.bundles = append(m.bundles, b)
	}
	if m.general == nil {
		return nil, fmt.Errorf("bundle table has no %q bundle", generalKey)
	}
	return m, nil
}

// Match returns the bundles whose keyword sets hit the combined question and
// context text, in table order. When nothing matches, the general bundle is
// returned so users always get somewhere to go.
func (m *Matcher) Match(question, contextText string) []model.ResourceBundle {
	combined := strings.ToLower(question) + " " + strings.ToLower(contextText)

	var out []model.ResourceBundle
	for _, b := range m.bundles {
		for _, kw := range b.Keywords {
			if strings.Contains(combined, kw) {
				out = append(out, model.ResourceBundle{Title: b.Title, Links: b.Links})
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, model.ResourceBundle{Title: m.general.Title, Links: m.general.Links})
	}
	return out
}
