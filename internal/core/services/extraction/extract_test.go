package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifierReply struct {
	DiseaseName string  `json:"diseaseName"`
	Confidence  float64 `json:"confidence"`
}

func TestUnmarshal_FencedJSONBlock(t *testing.T) {
	text := "Here is my analysis:\n```json\n{\"diseaseName\": \"Late Blight\", \"confidence\": 0.92}\n```\nLet me know if you need more detail."

	var reply classifierReply
	require.True(t, Unmarshal(text, &reply))
	assert.Equal(t, "Late Blight", reply.DiseaseName)
	assert.Equal(t, 0.92, reply.Confidence)
}

func TestUnmarshal_BareFence(t *testing.T) {
	text := "```\n{\"diseaseName\": \"Early Blight\", \"confidence\": 0.8}\n```"

	var reply classifierReply
	require.True(t, Unmarshal(text, &reply))
	assert.Equal(t, "Early Blight", reply.DiseaseName)
}

func TestUnmarshal_ProseWrappedBraces(t *testing.T) {
	text := `Based on the visible lesions this looks like rust. {"diseaseName": "Rust", "confidence": 0.75} Hope that helps.`

	var reply classifierReply
	require.True(t, Unmarshal(text, &reply))
	assert.Equal(t, "Rust", reply.DiseaseName)
	assert.Equal(t, 0.75, reply.Confidence)
}

func TestUnmarshal_PlainJSON(t *testing.T) {
	var reply classifierReply
	require.True(t, Unmarshal(`{"diseaseName": "Corn Smut", "confidence": 0.66}`, &reply))
	assert.Equal(t, "Corn Smut", reply.DiseaseName)
}

func TestUnmarshal_BrokenFenceFallsThrough(t *testing.T) {
	// The fenced block is truncated mid-object; the greedy brace
	// strategy still cannot rescue it, so extraction reports failure.
	text := "```json\n{\"diseaseName\": \"Late Bli\n```"

	var reply classifierReply
	assert.False(t, Unmarshal(text, &reply))
}

func TestUnmarshal_NoJSON(t *testing.T) {
	var reply classifierReply
	assert.False(t, Unmarshal("I cannot identify a disease in this image.", &reply))
	assert.False(t, Unmarshal("", &reply))
	assert.False(t, Unmarshal("   \n\t ", &reply))
}

func TestStrategies_Order(t *testing.T) {
	// A fenced block wins over loose braces elsewhere in the text.
	text := "{\"diseaseName\": \"wrong\"} and the real answer:\n```json\n{\"diseaseName\": \"Blast Disease\", \"confidence\": 0.9}\n```"

	var reply classifierReply
	require.True(t, Unmarshal(text, &reply))
	assert.Equal(t, "Blast Disease", reply.DiseaseName)
}

func TestBraceMatch_Greedy(t *testing.T) {
	candidate, ok := BraceMatch(`noise {"a": {"b": 1}} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, candidate)
}
