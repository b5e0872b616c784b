package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRequestOmitsEmptyPrompt(t *testing.T) {
	req := GenerationRequest{
		BrandContextPath: "fullstack-challenge/data/brands/sushi_delight_mx.md",
		Channel:          "whatsapp",
		LabelReason:      LabelReason{Label: "new-user", Reason: "welcome"},
		Count:            2,
		Language:         "en",
	}

	body, err := json.Marshal(req)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.NotContains(t, raw, "prompt")
	assert.Equal(t, float64(2), raw["count"])
	assert.Equal(t, map[string]interface{}{"label": "new-user", "reason": "welcome"}, raw["label_reason"])

	req.Prompt = "mention the 2x1 promo"
	body, err = json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"prompt":"mention the 2x1 promo"`)
}

func TestErrorResponseDetailString(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"string detail", `{"detail":"count must be <= 5"}`, "count must be <= 5", true},
		{"empty detail", `{"detail":""}`, "", false},
		{"missing detail", `{"error":"boom"}`, "", false},
		{"null detail", `{"detail":null}`, "", false},
		{"list detail", `{"detail":[{"loc":["body","count"],"msg":"too big"}]}`, "", false},
		{"numeric detail", `{"detail":42}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &e))
			got, ok := e.DetailString()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidCount(t *testing.T) {
	resp := GenerationResponse{Messages: []GeneratedMessage{
		{Text: "a", Valid: true},
		{Text: "b", Valid: false},
		{Text: "c", Valid: false},
	}}
	assert.Equal(t, 2, resp.InvalidCount())
}
