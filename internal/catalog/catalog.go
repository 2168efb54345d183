// Package catalog loads the fixed lookup tables used by the scorers: skill
// vocabularies, role templates and roadmap learning plans.
// The default catalog is stored as YAML and embedded at compile time.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// skillPlaceholder is substituted in fallback learning plan resources.
const skillPlaceholder = "{{.Skill}}"

// OverlapSkill is a skill token matched with word boundaries.
type OverlapSkill struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern,omitempty"`
}

// RoleTemplate lists the skills a role requires and prefers.
type RoleTemplate struct {
	Required  []string `yaml:"required"`
	Preferred []string `yaml:"preferred"`
}

// LearningPlan is the roadmap material for one skill.
type LearningPlan struct {
	EstimatedTime string              `yaml:"estimated_time"`
	Resources     map[string][]string `yaml:"resources"`
	Milestones    []string            `yaml:"milestones"`
}

// Catalog holds every fixed table. It is immutable after Load.
type Catalog struct {
	OverlapSkills []OverlapSkill          `yaml:"overlap_skills"`
	GapSkills     []string                `yaml:"gap_skills"`
	ActionVerbs   []string                `yaml:"action_verbs"`
	Roles         map[string]RoleTemplate `yaml:"roles"`
	LearningPlans map[string]LearningPlan `yaml:"learning_plans"`
	FallbackPlan  LearningPlan            `yaml:"fallback_plan"`

	matchers []*regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// MustDefault returns the embedded catalog, panicking if it does not parse.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file. An empty path returns the default catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, normalizes and validates a YAML catalog and compiles its matchers.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.matchers = make([]*regexp.Regexp, len(c.OverlapSkills))
	for i, s := range c.OverlapSkills {
		pattern := s.Pattern
		if pattern == "" {
			pattern = regexp.QuoteMeta(s.Name)
		}
		re, err := regexp.Compile(`\b` + pattern + `\b`)
		if err != nil {
			return nil, &Error{Field: "overlap_skills", Message: fmt.Sprintf("bad pattern for %q: %v", s.Name, err)}
		}
		c.matchers[i] = re
	}
	return &c, nil
}

// Validate checks that the tables the scorers depend on are present.
func (c *Catalog) Validate() error {
	if len(c.OverlapSkills) == 0 {
		return &Error{Field: "overlap_skills", Message: "must not be empty"}
	}
	if len(c.GapSkills) == 0 {
		return &Error{Field: "gap_skills", Message: "must not be empty"}
	}
	if len(c.ActionVerbs) == 0 {
		return &Error{Field: "action_verbs", Message: "must not be empty"}
	}
	for name, role := range c.Roles {
		if len(role.Required) == 0 {
			return &Error{Field: "roles." + name, Message: "required skills must not be empty"}
		}
	}
	if c.FallbackPlan.EstimatedTime == "" {
		return &Error{Field: "fallback_plan.estimated_time", Message: "must not be empty"}
	}
	return nil
}

// OverlapMatchers returns the compiled word-boundary matchers, parallel to OverlapSkills.
func (c *Catalog) OverlapMatchers() []*regexp.Regexp {
	return c.matchers
}

// Role looks up a role template by case-insensitive name.
func (c *Catalog) Role(name string) (RoleTemplate, bool) {
	role, ok := c.Roles[strings.ToLower(strings.TrimSpace(name))]
	return role, ok
}

// RoleNames returns the role names in sorted order.
func (c *Catalog) RoleNames() []string {
	names := make([]string, 0, len(c.Roles))
	for name := range c.Roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Plan returns the learning plan for a skill, or the fallback plan with the
// skill name substituted when the skill has no entry. The bool reports
// whether a dedicated entry was found.
func (c *Catalog) Plan(skill string) (LearningPlan, bool) {
	if plan, ok := c.LearningPlans[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return plan.clone(), true
	}
	plan := c.FallbackPlan.clone()
	for level, items := range plan.Resources {
		for i, item := range items {
			items[i] = strings.ReplaceAll(item, skillPlaceholder, skill)
		}
		plan.Resources[level] = items
	}
	return plan, false
}

func (c *Catalog) normalize() {
	for i := range c.OverlapSkills {
		c.OverlapSkills[i].Name = strings.ToLower(strings.TrimSpace(c.OverlapSkills[i].Name))
	}
	for i := range c.GapSkills {
		c.GapSkills[i] = strings.ToLower(strings.TrimSpace(c.GapSkills[i]))
	}
	for i := range c.ActionVerbs {
		c.ActionVerbs[i] = strings.ToLower(strings.TrimSpace(c.ActionVerbs[i]))
	}

	roles := make(map[string]RoleTemplate, len(c.Roles))
	for name, role := range c.Roles {
		roles[strings.ToLower(strings.TrimSpace(name))] = role
	}
	c.Roles = roles

	plans := make(map[string]LearningPlan, len(c.LearningPlans))
	for name, plan := range c.LearningPlans {
		plans[strings.ToLower(strings.TrimSpace(name))] = plan
	}
	c.LearningPlans = plans
}

// clone copies the plan so callers cannot mutate the catalog.
func (p LearningPlan) clone() LearningPlan {
	out := LearningPlan{
		EstimatedTime: p.EstimatedTime,
		Resources:     make(map[string][]string, len(p.Resources)),
		Milestones:    append([]string(nil), p.Milestones...),
	}
	for level, items := range p.Resources {
		out.Resources[level] = append([]string(nil), items...)
	}
	return out
}

// Error reports an invalid catalog field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid catalog field %s: %s", e.Field, e.Message)
}
