// Package prompts builds the oracle prompts for profile analysis and
// relevance scoring. Prompt text is the scoring contract: the JSON schemas
// and calibration instructions here must stay in sync with the response
// structs in pkg/services.
package prompts

import (
	"fmt"
	"strings"

	"github.com/prospera-ai/prospera-engine/pkg/models"
)

// BuildProfileAnalysisPrompt creates the prompt asking the analysis oracle
// to derive a matching-ready characterization from a raw company profile.
func BuildProfileAnalysisPrompt(profile *models.CompanyProfile) string {
	var prompt strings.Builder

	prompt.WriteString("Analyze this business profile and extract key characteristics for opportunity matching:\n\n")

	prompt.WriteString(fmt.Sprintf("Company: %s\n", profile.CompanyName))
	prompt.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	prompt.WriteString(fmt.Sprintf("Business Type: %s\n", profile.BusinessType))
	prompt.WriteString(fmt.Sprintf("Company Size: %s\n", profile.CompanySize))
	prompt.WriteString(fmt.Sprintf("Description: %s\n", profile.Description))
	prompt.WriteString(fmt.Sprintf("Services: %s\n", strings.Join(profile.Services, ", ")))
	prompt.WriteString(fmt.Sprintf("Target Markets: %s\n", strings.Join(profile.TargetMarkets, ", ")))
	prompt.WriteString(fmt.Sprintf("Key Challenges: %s\n", strings.Join(profile.KeyChallenges, ", ")))

	prompt.WriteString("\nReturn JSON with:\n")
	prompt.WriteString("- industry_focus: primary industry category\n")
	prompt.WriteString("- business_stage: one of startup/growth/established/enterprise\n")
	prompt.WriteString("- target_customers: array of key customer segments\n")
	prompt.WriteString("- growth_priorities: array of main areas for business growth\n")
	prompt.WriteString("- technology_adoption: one of low/medium/high\n")
	prompt.WriteString("- geographic_scope: one of local/regional/national/international\n")
	prompt.WriteString("- key_capabilities: array of core business capabilities\n")
	prompt.WriteString("- partnership_interests: array of partnership types they might seek\n\n")

	prompt.WriteString("Return ONLY the JSON, no additional text.\n")

	return prompt.String()
}

// ProfileAnalysisSystemMessage returns the system message for the analysis oracle.
func ProfileAnalysisSystemMessage() string {
	return "You are a business analyst expert at understanding company profiles and matching them with opportunities. Respond with JSON only."
}
