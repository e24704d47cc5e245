package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePromotion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Promotion
		wantErr  bool
	}{
		{name: "exact", input: "UFC", expected: PromotionUFC},
		{name: "lowercase", input: "pfl", expected: PromotionPFL},
		{name: "full name", input: "ONE Championship", expected: PromotionONE},
		{name: "short alias", input: "ONE", expected: PromotionONE},
		{name: "bellator alias", input: "bellator", expected: PromotionBellator},
		{name: "rizin alias", input: " Rizin ", expected: PromotionRIZIN},
		{name: "unknown", input: "Glory", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePromotion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown promotion")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPromotion_Valid(t *testing.T) {
	for _, p := range AllPromotions {
		assert.True(t, p.Valid(), "promotion %s should be valid", p)
	}
	assert.False(t, Promotion("Glory").Valid())
	assert.False(t, Promotion("").Valid())
}

func TestPromotionNames(t *testing.T) {
	names := PromotionNames()
	require.Len(t, names, len(AllPromotions))
	assert.Equal(t, "UFC", names[0])
	assert.Contains(t, names, "ONE Championship")
}
