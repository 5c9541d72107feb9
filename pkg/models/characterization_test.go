package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBusinessStage(t *testing.T) {
	assert.Equal(t, BusinessStageGrowth, NormalizeBusinessStage("growth"))
	assert.Equal(t, BusinessStageStartup, NormalizeBusinessStage("  Startup "))
	assert.Equal(t, BusinessStageUnknown, NormalizeBusinessStage(""))
	assert.Equal(t, BusinessStageUnknown, NormalizeBusinessStage("scale-up"))
}

func TestNormalizeTechnologyAdoption(t *testing.T) {
	assert.Equal(t, TechAdoptionHigh, NormalizeTechnologyAdoption("HIGH"))
	assert.Equal(t, TechAdoptionUnknown, NormalizeTechnologyAdoption("bleeding edge"))
	assert.Equal(t, TechAdoptionUnknown, NormalizeTechnologyAdoption(""))
}

func TestNormalizeGeographicScope(t *testing.T) {
	assert.Equal(t, GeoScopeInternational, NormalizeGeographicScope("international"))
	assert.Equal(t, GeoScopeUnknown, NormalizeGeographicScope("global-ish"))
}

func TestNewCompanyCharacterizationDefaults(t *testing.T) {
	c := NewCompanyCharacterization()

	assert.Equal(t, BusinessStageUnknown, c.BusinessStage)
	assert.Equal(t, TechAdoptionUnknown, c.TechnologyAdoption)
	assert.Equal(t, GeoScopeUnknown, c.GeographicScope)

	// List fields are non-nil so consumers never need nil checks.
	assert.NotNil(t, c.TargetCustomers)
	assert.NotNil(t, c.GrowthPriorities)
	assert.NotNil(t, c.KeyCapabilities)
	assert.NotNil(t, c.PartnershipInterests)

	assert.False(t, c.Degraded())
}

func TestCharacterizationDegraded(t *testing.T) {
	c := NewCompanyCharacterization()
	c.ErrorKind = AnalysisErrorUnavailable
	c.Error = "Analysis unavailable: connection refused"
	assert.True(t, c.Degraded())
}
