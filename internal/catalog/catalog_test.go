package catalog

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreFirstEntries(t *testing.T) {
	assert.Equal(t, "Sushi Delight MX", DefaultBrand().Label)
	assert.Equal(t, "whatsapp", DefaultChannel())
	assert.Equal(t, LabelReason{Label: "new-user", Reason: "welcome"}, DefaultLabelReason())
	assert.Equal(t, "en", DefaultLanguage().Value)
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	b := Brands()
	b[0].Label = "mutated"
	assert.Equal(t, "Sushi Delight MX", Brands()[0].Label)

	c := Channels()
	c[0] = "fax"
	assert.True(t, IsChannel("whatsapp"))
	assert.False(t, IsChannel("fax"))
}

func TestFindBrand(t *testing.T) {
	b, ok := FindBrand("fullstack-challenge/data/brands/vetpro_chile_cl.md")
	require.True(t, ok)
	assert.Equal(t, "VetPro Chile CL", b.Label)

	_, ok = FindBrand("Sushi Delight MX")
	assert.False(t, ok, "labels are not valid brand values")
}

func TestFindLabelReason(t *testing.T) {
	tests := []struct {
		key  string
		want LabelReason
		ok   bool
	}{
		{"new-user|welcome", LabelReason{"new-user", "welcome"}, true},
		{"recurrent-user|repeat-purchase", LabelReason{"recurrent-user", "repeat-purchase"}, true},
		{"at-risk-user|re-activate", LabelReason{"at-risk-user", "re-activate"}, true},
		{"new-user-welcome", LabelReason{}, false},
		{"casual|welcome", LabelReason{}, false},
		{"", LabelReason{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := FindLabelReason(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabelReasonKeyRoundTrip(t *testing.T) {
	for _, lr := range LabelReasons() {
		got, ok := FindLabelReason(lr.Key())
		require.True(t, ok, lr.Key())
		assert.Equal(t, lr, got)
	}
	assert.Equal(t, "churned (re-activate)", LabelReason{"churned", "re-activate"}.Display())
}

func TestStringsFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Strings("en"), Strings("fr"))
	assert.Equal(t, "Marca", Strings("es").Brand)
}

func TestEveryLanguageHasCompleteStringTable(t *testing.T) {
	tables := Translations()
	for _, lang := range Languages() {
		table, ok := tables[lang.Value]
		require.True(t, ok, "missing string table for %s", lang.Value)

		v := reflect.ValueOf(table)
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(), "%s: %s is empty", lang.Value, v.Type().Field(i).Name)
		}
	}
}
