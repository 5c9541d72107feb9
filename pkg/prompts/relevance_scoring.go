package prompts

import (
	"fmt"
	"strings"

	"github.com/prospera-ai/prospera-engine/pkg/models"
)

// StrictScoringInstruction calibrates the scoring oracle: only opportunities
// it considers highly relevant should score above 0.7. This is a prompt-level
// policy, not a programmatic invariant. The ranker's configurable threshold
// is the only hard filter.
const StrictScoringInstruction = "Be strict with scoring - only score above 0.7 for highly relevant opportunities."

// BuildRelevanceScoringPrompt creates the prompt asking the scoring oracle to
// quantify how relevant one opportunity is to a characterized company.
// previewRunes caps the opportunity content excerpt to bound prompt size.
func BuildRelevanceScoringPrompt(
	c *models.CompanyCharacterization,
	opp *models.Opportunity,
	previewRunes int,
) string {
	var prompt strings.Builder

	prompt.WriteString("Analyze the relevance of this business opportunity for the company:\n\n")

	prompt.WriteString("Company Profile:\n")
	prompt.WriteString(fmt.Sprintf("Industry Focus: %s\n", orUnknown(c.IndustryFocus)))
	prompt.WriteString(fmt.Sprintf("Business Stage: %s\n", c.BusinessStage))
	prompt.WriteString(fmt.Sprintf("Target Customers: %s\n", joinOrUnknown(c.TargetCustomers)))
	prompt.WriteString(fmt.Sprintf("Growth Priorities: %s\n", joinOrUnknown(c.GrowthPriorities)))
	prompt.WriteString(fmt.Sprintf("Technology Adoption: %s\n", c.TechnologyAdoption))
	prompt.WriteString(fmt.Sprintf("Geographic Scope: %s\n", c.GeographicScope))

	prompt.WriteString("\nOpportunity:\n")
	prompt.WriteString(fmt.Sprintf("Title: %s\n", opp.Title))
	prompt.WriteString(fmt.Sprintf("Description: %s\n", opp.Description))
	prompt.WriteString(fmt.Sprintf("Type: %s\n", opp.Type))
	prompt.WriteString(fmt.Sprintf("Source: %s\n", opp.Source))
	prompt.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(opp.Tags, ", ")))

	preview := opp.ContentPreview(previewRunes)
	if preview == "" {
		preview = "No content"
	}
	prompt.WriteString(fmt.Sprintf("Content Preview: %s\n", preview))

	prompt.WriteString("\nAnalyze relevance considering:\n")
	prompt.WriteString("1. Industry alignment and market fit\n")
	prompt.WriteString("2. Business stage appropriateness\n")
	prompt.WriteString("3. Geographic relevance\n")
	prompt.WriteString("4. Potential business impact\n")
	prompt.WriteString("5. Timing and urgency\n")

	prompt.WriteString("\nReturn JSON with:\n")
	prompt.WriteString("- relevance_score: float between 0.0 and 1.0 (1.0 = highly relevant)\n")
	prompt.WriteString("- reasoning: detailed explanation of why this opportunity matches or doesn't match\n")
	prompt.WriteString("- key_match_factors: array of specific reasons for the score\n")
	prompt.WriteString("- actionability: how actionable this opportunity is for the company\n\n")

	prompt.WriteString(StrictScoringInstruction)
	prompt.WriteString("\n")

	return prompt.String()
}

// RelevanceScoringSystemMessage returns the system message for the scoring oracle.
func RelevanceScoringSystemMessage() string {
	return "You are a business opportunity analyst. Provide precise relevance scoring with detailed reasoning. Respond only with valid JSON."
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func joinOrUnknown(items []string) string {
	if len(items) == 0 {
		return "Unknown"
	}
	return strings.Join(items, ", ")
}
