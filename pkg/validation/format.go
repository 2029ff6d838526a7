// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/exchange"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX, format)
}

// ValidateCurrency checks if code is one of the supported display currencies.
func ValidateCurrency(code string) error {
	if !exchange.Supported(code) {
		return fmt.Errorf("unsupported currency %s, expected one of %v", code, exchange.SupportedCurrencies())
	}
	return nil
}
