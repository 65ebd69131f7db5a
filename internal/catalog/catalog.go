// Package catalog holds the static per-market reference data: the fixed
// document checklist, seed diagnosis results, submission inputs and outputs,
// and the lab list.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/certimatch/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

// MarketCatalog is the reference data for one market.
type MarketCatalog struct {
	Label           string                   `yaml:"label"`
	RequiredDocs    []string                 `yaml:"required_docs"`
	Remediation     []domain.RemediationItem `yaml:"remediation"`
	TechnicalInputs []domain.SubmissionInput `yaml:"technical_inputs"`
	AdminInputs     []domain.SubmissionInput `yaml:"admin_inputs"`
	Outputs         []domain.GeneratedOutput `yaml:"generated_outputs"`
}

type Catalog struct {
	Markets map[domain.Market]*MarketCatalog `yaml:"markets"`
	Labs    []domain.Lab                     `yaml:"labs"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embedded)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot proceed without the catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	for market, mc := range c.Markets {
		if mc == nil {
			return fmt.Errorf("catalog market %s is empty", market)
		}
		seen := make(map[string]bool, len(mc.Remediation))
		for _, item := range mc.Remediation {
			if item.ID == "" {
				return fmt.Errorf("catalog market %s: remediation item without id", market)
			}
			if seen[item.ID] {
				return fmt.Errorf("catalog market %s: duplicate remediation id %q", market, item.ID)
			}
			seen[item.ID] = true
			if !item.Status.Valid() {
				return fmt.Errorf("catalog market %s: item %s has invalid status %q", market, item.ID, item.Status)
			}
		}
	}
	return nil
}

func (c *Catalog) market(m domain.Market) *MarketCatalog {
	if mc, ok := c.Markets[m]; ok && mc != nil {
		return mc
	}
	return &MarketCatalog{}
}

// Label returns the catalog's display label for m.
func (c *Catalog) Label(m domain.Market) string {
	if l := c.market(m).Label; l != "" {
		return l
	}
	return m.Label()
}

// RequiredDocs returns a copy of m's fixed document checklist.
func (c *Catalog) RequiredDocs(m domain.Market) []string {
	return append([]string{}, c.market(m).RequiredDocs...)
}

// SeedRemediation returns a copy of the items a diagnosis run publishes for m.
func (c *Catalog) SeedRemediation(m domain.Market) []domain.RemediationItem {
	return append([]domain.RemediationItem{}, c.market(m).Remediation...)
}

// Inputs returns m's technical inputs followed by its admin inputs, each
// tagged with its section.
func (c *Catalog) Inputs(m domain.Market) []domain.SubmissionInput {
	mc := c.market(m)
	inputs := make([]domain.SubmissionInput, 0, len(mc.TechnicalInputs)+len(mc.AdminInputs))
	for _, in := range mc.TechnicalInputs {
		in.Section = domain.SectionTechnical
		inputs = append(inputs, in)
	}
	for _, in := range mc.AdminInputs {
		in.Section = domain.SectionAdmin
		inputs = append(inputs, in)
	}
	return inputs
}

// Outputs returns a copy of the documents a submission run produces for m.
func (c *Catalog) Outputs(m domain.Market) []domain.GeneratedOutput {
	return append([]domain.GeneratedOutput{}, c.market(m).Outputs...)
}

// AllLabs returns a copy of the lab list in catalog order.
func (c *Catalog) AllLabs() []domain.Lab {
	labs := make([]domain.Lab, len(c.Labs))
	for i, l := range c.Labs {
		l.Tags = append([]string(nil), l.Tags...)
		labs[i] = l
	}
	return labs
}
