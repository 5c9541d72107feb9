package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOpportunityType(t *testing.T) {
	got, ok := ParseOpportunityType(" News ")
	assert.True(t, ok)
	assert.Equal(t, OpportunityTypeNews, got)

	_, ok = ParseOpportunityType("webinar")
	assert.False(t, ok)

	_, ok = ParseOpportunityType("")
	assert.False(t, ok)
}

func TestContentPreview(t *testing.T) {
	opp := &Opportunity{Content: "short body"}
	assert.Equal(t, "short body", opp.ContentPreview(500))

	opp.Content = strings.Repeat("a", 600)
	assert.Len(t, opp.ContentPreview(500), 500)

	assert.Equal(t, "", opp.ContentPreview(0))
}

func TestContentPreviewMultibyte(t *testing.T) {
	// Truncation must never split a rune.
	opp := &Opportunity{Content: strings.Repeat("é", 10)}
	preview := opp.ContentPreview(4)
	assert.Equal(t, "éééé", preview)
}

func TestProfileIsEmpty(t *testing.T) {
	empty := &CompanyProfile{CompanyName: "  ", Industry: "", Description: "\t"}
	assert.True(t, empty.IsEmpty())

	named := &CompanyProfile{CompanyName: "Acme"}
	assert.False(t, named.IsEmpty())

	described := &CompanyProfile{Description: "makes things"}
	assert.False(t, described.IsEmpty())
}
