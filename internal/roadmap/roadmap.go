// Package roadmap turns missing skills into an ordered learning plan.
package roadmap

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/types"
)

// NoGapsMessage is reported when there is nothing to learn.
const NoGapsMessage = "No skill gaps!"

// weeksPerSkill drives the aggregate estimate. It is linear in the number of
// skills and independent of the per-skill estimates.
const weeksPerSkill = 6

// Generator builds roadmaps from the catalog's learning plans.
type Generator struct {
	catalog *catalog.Catalog
}

// NewGenerator creates a generator over the given catalog.
func NewGenerator(c *catalog.Catalog) *Generator {
	return &Generator{catalog: c}
}

// Generate builds the roadmap for a gap report's missing skills.
func (g *Generator) Generate(report types.SkillGapReport) types.Roadmap {
	return g.ForSkills(report.MissingSkills)
}

// ForSkills builds one entry per skill with priority equal to its 1-based
// position. Skills without a learning plan get the generic fallback.
func (g *Generator) ForSkills(skills []string) types.Roadmap {
	if len(skills) == 0 {
		return types.Roadmap{Message: NoGapsMessage, Entries: []types.RoadmapEntry{}}
	}

	entries := make([]types.RoadmapEntry, len(skills))
	for i, skill := range skills {
		plan, _ := g.catalog.Plan(skill)
		entries[i] = types.RoadmapEntry{
			Priority:      i + 1,
			Skill:         skill,
			EstimatedTime: plan.EstimatedTime,
			Resources:     plan.Resources,
			Milestones:    plan.Milestones,
		}
	}

	return types.Roadmap{
		TotalSkillsToLearn: len(skills),
		EstimatedTotalTime: fmt.Sprintf("%d weeks", len(skills)*weeksPerSkill),
		Entries:            entries,
	}
}
