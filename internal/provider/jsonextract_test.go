package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-profile-extractor/internal/domain"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("Should extract JSON wrapped in prose and code fences", func(t *testing.T) {
		raw, err := ExtractJSONObject("Sure! ```json\n{\"name\":\"Ana\"}\n``` done")
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Ana"}`, raw)
	})

	t.Run("Should fail when response has no braces", func(t *testing.T) {
		_, err := ExtractJSONObject("I could not produce any structured output.")
		assert.ErrorIs(t, err, domain.ErrProfileParse)
	})

	t.Run("Should handle nested objects with a depth scan", func(t *testing.T) {
		raw, err := ExtractJSONObject(`prefix {"a":{"b":{"c":1}},"d":2} suffix`)
		require.NoError(t, err)
		assert.Equal(t, `{"a":{"b":{"c":1}},"d":2}`, raw)
	})

	t.Run("Should ignore braces inside string values", func(t *testing.T) {
		raw, err := ExtractJSONObject(`{"note":"uses {curly} braces and a \" quote"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"note":"uses {curly} braces and a \" quote"}`, raw)
	})

	t.Run("Should take the first balanced span, not the last", func(t *testing.T) {
		raw, err := ExtractJSONObject(`{"first":1} and later {"second":2}`)
		require.NoError(t, err)
		assert.Equal(t, `{"first":1}`, raw)
	})

	t.Run("Should fail on unbalanced braces", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"name":"Ana"`)
		assert.ErrorIs(t, err, domain.ErrProfileParse)
	})
}

func TestParseProfile(t *testing.T) {
	t.Run("Should decode profile and backfill empty fields with sentinel", func(t *testing.T) {
		profile, err := parseProfile(`Here you go: {"name":"Ana García","profession":"Data Scientist"}`)
		require.NoError(t, err)
		assert.Equal(t, "Ana García", profile.Name)
		assert.Equal(t, "Data Scientist", profile.Profession)
		assert.Equal(t, domain.NotSpecified, profile.Education)
		assert.Equal(t, domain.NotSpecified, profile.SoftSkills)
	})

	t.Run("Should fail on undecodable object", func(t *testing.T) {
		_, err := parseProfile(`{"name": [1,2,}`)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrProfileParse))
	})
}
