package ml

import (
	"fmt"
	"slices"
	"strings"
)

// Feature names accepted in a feature order
const (
	FeatureAmount   = "amount"
	FeatureMerchant = "merchant"
	FeatureCategory = "category"
	FeatureHour     = "hour"
	FeatureUserAge  = "user_age"
)

// DefaultFeatureOrder is used when neither the artifact nor the configuration sets one
var DefaultFeatureOrder = []string{FeatureAmount, FeatureMerchant, FeatureCategory, FeatureHour, FeatureUserAge}

// ValidateFeatureOrder requires every known feature exactly once
func ValidateFeatureOrder(order []string) error {
	if len(order) != len(DefaultFeatureOrder) {
		return fmt.Errorf("feature order must list %d features, got %d", len(DefaultFeatureOrder), len(order))
	}

	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if !slices.Contains(DefaultFeatureOrder, name) {
			return fmt.Errorf("unknown feature %q in feature order", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate feature %q in feature order", name)
		}
		seen[name] = true
	}
	return nil
}

// ResolveFeatureOrder picks the artifact order, then the configured one, then the default
func ResolveFeatureOrder(artifactOrder, configured []string) ([]string, error) {
	switch {
	case len(artifactOrder) > 0:
		if err := ValidateFeatureOrder(artifactOrder); err != nil {
			return nil, fmt.Errorf("artifact: %w", err)
		}
		return slices.Clone(artifactOrder), nil
	case len(configured) > 0:
		if err := ValidateFeatureOrder(configured); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		return slices.Clone(configured), nil
	default:
		return slices.Clone(DefaultFeatureOrder), nil
	}
}

// ParseFeatureOrder splits a comma separated list, ignoring blanks
func ParseFeatureOrder(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
