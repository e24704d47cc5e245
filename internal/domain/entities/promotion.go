// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strings"
)

// Promotion identifies the organization running a fight card.
// The set is closed: only the constants below are valid.
type Promotion string

// Known promotions.
const (
	PromotionUFC      Promotion = "UFC"
	PromotionPFL      Promotion = "PFL"
	PromotionBKFC     Promotion = "BKFC"
	PromotionONE      Promotion = "ONE Championship"
	PromotionBellator Promotion = "Bellator MMA"
	PromotionRIZIN    Promotion = "RIZIN FF"
)

// AllPromotions lists every known promotion in display order.
var AllPromotions = []Promotion{
	PromotionUFC,
	PromotionPFL,
	PromotionBKFC,
	PromotionONE,
	PromotionBellator,
	PromotionRIZIN,
}

// promotionAliases maps lowercased alternate spellings to their promotion.
var promotionAliases = map[string]Promotion{
	"one":      PromotionONE,
	"one fc":   PromotionONE,
	"bellator": PromotionBellator,
	"rizin":    PromotionRIZIN,
}

// ParsePromotion resolves a promotion name case-insensitively.
// Short aliases such as "ONE" or "Bellator" are accepted.
func ParsePromotion(s string) (Promotion, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range AllPromotions {
		if strings.ToLower(string(p)) == name {
			return p, nil
		}
	}
	if p, ok := promotionAliases[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown promotion %q", s)
}

// Valid reports whether p is one of the known promotions.
func (p Promotion) Valid() bool {
	for _, known := range AllPromotions {
		if p == known {
			return true
		}
	}
	return false
}

// PromotionNames returns the names of all known promotions.
func PromotionNames() []string {
	names := make([]string, len(AllPromotions))
	for i, p := range AllPromotions {
		names[i] = string(p)
	}
	return names
}
