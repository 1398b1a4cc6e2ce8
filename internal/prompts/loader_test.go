package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_KnownStages(t *testing.T) {
	ClearCache()

	for _, stage := range []string{StageExtraction, StageInsights, StageCurriculum} {
		set, err := Load(stage)
		require.NoError(t, err, "stage %s", stage)

		system, err := set.System()
		require.NoError(t, err)
		assert.NotEmpty(t, system, "every stage carries a system instruction")
	}
}

func TestLoad_UnknownStage(t *testing.T) {
	ClearCache()

	_, err := Load("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no prompt file")
}

func TestLoad_CachesSet(t *testing.T) {
	ClearCache()

	first, err := Load(StageExtraction)
	require.NoError(t, err)
	second, err := Load(StageExtraction)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	set, err := Load(StageExtraction)
	require.NoError(t, err)

	prompt, err := set.Get("extract-profile")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Extract structured candidate information")
}

func TestGet_UnknownKey(t *testing.T) {
	ClearCache()

	set, err := Load(StageInsights)
	require.NoError(t, err)

	_, err = set.Get("nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insights/nonexistent-key not found")
}

func TestFormat_SubstitutesPlaceholders(t *testing.T) {
	ClearCache()

	set, err := Load(StageExtraction)
	require.NoError(t, err)

	prompt, err := set.Format("extract-profile", map[string]string{"DetailLevel": "comprehensive"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "comprehensive")
	assert.NotContains(t, prompt, "{{.DetailLevel}}")
}

func TestFormat_MissingPlaceholderValue(t *testing.T) {
	ClearCache()

	set, err := Load(StageExtraction)
	require.NoError(t, err)

	_, err = set.Format("extract-profile", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value for placeholder {{.DetailLevel}}")
}

func TestKeys_Sorted(t *testing.T) {
	ClearCache()

	set, err := Load(StageCurriculum)
	require.NoError(t, err)

	keys := set.Keys()
	assert.Contains(t, keys, "synthesize")
	assert.Contains(t, keys, SystemKey)
	assert.IsIncreasing(t, keys)
}
