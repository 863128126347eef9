package ports

import (
	"context"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// ConversionRepository reads attributed shop orders.
type ConversionRepository interface {
	ListByAffiliateCode(ctx context.Context, code string) ([]domain.Conversion, error)
}
