package diagnosis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineClassifier_PicksACandidate(t *testing.T) {
	c := NewOfflineClassifier(0.5, 0.3, serviceLogger())
	candidates := candidateSet()

	names := map[string]bool{}
	for _, d := range candidates {
		names[d.Name] = true
	}

	for i := 0; i < 50; i++ {
		cls, err := c.Classify(context.Background(), Image{}, nil, candidates)
		require.NoError(t, err)

		assert.True(t, names[cls.DiseaseName])
		assert.GreaterOrEqual(t, cls.Confidence, 0.5)
		assert.Less(t, cls.Confidence, 0.8)
		assert.True(t, cls.IsOffline)
		assert.Equal(t, offlineReasoning, cls.Reasoning)
	}
}

func TestOfflineClassifier_EventuallyCoversAllCandidates(t *testing.T) {
	c := NewOfflineClassifier(0.5, 0.3, serviceLogger())
	candidates := candidateSet()

	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < len(candidates); i++ {
		cls, err := c.Classify(context.Background(), Image{}, nil, candidates)
		require.NoError(t, err)
		seen[cls.DiseaseName] = true
	}

	assert.Len(t, seen, len(candidates))
}

func TestOfflineClassifier_SingleCandidate(t *testing.T) {
	c := NewOfflineClassifier(0.5, 0.3, serviceLogger())
	candidates := candidateSet()[:1]

	cls, err := c.Classify(context.Background(), Image{}, nil, candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates[0].Name, cls.DiseaseName)
}
