package catalog

import (
	"fmt"
	"strconv"

	"github.com/mynet/sales/internal/domain/shared"
)

const (
	productCodeWidth = 4
	maxProductCode   = 9999
)

// NextProductCode returns the code following maxCode. Codes form a running
// counter: gaps left by removed products are never reused. An empty maxCode
// means no product exists yet.
func NextProductCode(maxCode string) (string, error) {
	if maxCode == "" {
		return fmt.Sprintf("%0*d", productCodeWidth, 1), nil
	}
	n, err := strconv.Atoi(maxCode)
	if err != nil {
		return "", shared.NewDomainError("INVALID_CODE", fmt.Sprintf("existing product code %q is not numeric", maxCode))
	}
	if n >= maxProductCode {
		return "", shared.NewDomainError("CODE_EXHAUSTED", "No product codes left")
	}
	return fmt.Sprintf("%0*d", productCodeWidth, n+1), nil
}
