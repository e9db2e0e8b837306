package ml

import (
	"fmt"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
)

// VocabularyVersion is the version of the built-in categorical codes
const VocabularyVersion = "v1"

// UnknownMerchantCode encodes any merchant outside the vocabulary
const UnknownMerchantCode = -1

// Vocabulary maps categorical values to the integer codes the model was trained on
type Vocabulary struct {
	Version    string         `json:"version"`
	Merchants  map[string]int `json:"merchant"`
	Categories map[string]int `json:"category"`
}

// DefaultVocabulary returns the v1 codes: merchants and categories in lexical order
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Version: VocabularyVersion,
		Merchants: map[string]int{
			"amazon":  0,
			"target":  1,
			"walmart": 2,
		},
		Categories: map[string]int{
			string(entity.CategoryEntertainment): 0,
			string(entity.CategoryFood):          1,
			string(entity.CategoryPayment):       2,
			string(entity.CategoryShopping):      3,
			string(entity.CategoryTransfer):      4,
			string(entity.CategoryTravel):        5,
			string(entity.CategoryWithdrawal):    6,
		},
	}
}

// Validate checks that both tables are present and codes are non-negative
func (v *Vocabulary) Validate() error {
	if len(v.Merchants) == 0 || len(v.Categories) == 0 {
		return fmt.Errorf("vocabulary %q: merchant and category tables are required", v.Version)
	}
	for name, code := range v.Merchants {
		if code < 0 {
			return fmt.Errorf("vocabulary %q: merchant %q has negative code %d", v.Version, name, code)
		}
	}
	for name, code := range v.Categories {
		if code < 0 {
			return fmt.Errorf("vocabulary %q: category %q has negative code %d", v.Version, name, code)
		}
	}
	return nil
}

// MerchantCode returns the merchant's code or UnknownMerchantCode
func (v *Vocabulary) MerchantCode(merchant string) int {
	if code, ok := v.Merchants[merchant]; ok {
		return code
	}
	return UnknownMerchantCode
}

// CategoryCode returns the category's code; unknown categories are an error
func (v *Vocabulary) CategoryCode(category entity.Category) (int, error) {
	code, ok := v.Categories[string(category)]
	if !ok {
		return 0, fmt.Errorf("%w: category %q is not in vocabulary %s", errs.ErrInvalidFeature, category, v.Version)
	}
	return code, nil
}
