package extraction

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasad/rfp-pilot/internal/llm"
)

// fakeClient returns canned responses for GenerateJSON.
type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeClient) Close() error { return nil }

func TestModelSource_ExtractValidResponse(t *testing.T) {
	client := &fakeClient{response: `{
		"items": [
			{"name": "11kV XLPE Power Cable", "quantity": 5000, "specs": {"voltage": "11kV", "insulation": "XLPE"}},
			{"name": "Control Cable", "specs": {"voltage": "1.1kV"}}
		]
	}`}

	items, err := NewModelSource(client).Extract(context.Background(), "rfp text")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "11kV XLPE Power Cable", items[0].Name)
	assert.Equal(t, 5000.0, items[0].Quantity)
	assert.Equal(t, "XLPE", items[0].Specs["insulation"])

	// Missing quantity defaults to 1
	assert.Equal(t, 1.0, items[1].Quantity)
}

func TestModelSource_ExtractFencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"items\": [{\"name\": \"Cable\", \"specs\": {}}]}\n```"}

	items, err := NewModelSource(client).Extract(context.Background(), "rfp text")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].Specs)
}

func TestModelSource_ExtractMalformedJSON(t *testing.T) {
	client := &fakeClient{response: "I could not find any items, sorry."}

	items, err := NewModelSource(client).Extract(context.Background(), "rfp text")

	// Soft failure: empty slice plus a ParseError
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestModelSource_ExtractSchemaViolation(t *testing.T) {
	// items present but an entry is missing the required name
	client := &fakeClient{response: `{"items": [{"specs": {"voltage": "11kV"}}]}`}

	items, err := NewModelSource(client).Extract(context.Background(), "rfp text")
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Empty(t, items)
}

func TestModelSource_ExtractAPIError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("quota exceeded")}

	_, err := NewModelSource(client).Extract(context.Background(), "rfp text")
	require.Error(t, err)
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestModelSource_TruncatesLongInput(t *testing.T) {
	client := &fakeClient{response: `{"items": []}`}
	long := make([]byte, maxPromptText*2)
	for i := range long {
		long[i] = 'a'
	}

	items, err := NewModelSource(client).Extract(context.Background(), string(long))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTruncateText_KeepsRuneBoundary(t *testing.T) {
	// A multi-byte character straddling the cap must be dropped whole.
	text := strings.Repeat("a", 9) + "é" // é is 2 bytes, starting at index 9

	out := truncateText(text, 10)
	assert.Equal(t, strings.Repeat("a", 9), out)
	assert.True(t, utf8.ValidString(out))

	assert.Equal(t, text, truncateText(text, len(text)))
	assert.Equal(t, "", truncateText("é", 1))
}

func TestFixedSource_Extract(t *testing.T) {
	items, err := NewFixedSource().Extract(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mock AI Item", items[0].Name)
	assert.Equal(t, 1.0, items[0].Quantity)
}

func TestSimulatedRequirements(t *testing.T) {
	items := SimulatedRequirements()
	require.Len(t, items, 3)
	assert.Equal(t, 5000.0, items[0].Quantity)
	assert.Equal(t, "XLPE", items[0].Specs["insulation"])
	assert.Equal(t, "Cloud", items[2].Specs["type"])
}
