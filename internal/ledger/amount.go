// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package ledger

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// yoctoDecimals is the number of fractional digits of one NEAR.
const yoctoDecimals = 24

// ParseAmount converts a decimal NEAR amount such as "0.1" into yoctoNEAR.
func ParseAmount(amount string) (string, error) {
	amount = strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
	if amount == "" {
		return "", errors.New("ledger: empty amount")
	}

	whole, fraction, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if len(fraction) > yoctoDecimals {
		return "", errors.Errorf("ledger: amount %q has more than %d decimals", amount, yoctoDecimals)
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return "", errors.Errorf("ledger: amount %q is not a decimal number", amount)
	}

	digits := whole + fraction + strings.Repeat("0", yoctoDecimals-len(fraction))

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return "", errors.Errorf("ledger: amount %q is not a decimal number", amount)
	}

	return value.String(), nil
}

// IsAmount reports whether value is a non-negative integer amount in base units.
func IsAmount(value string) bool {
	return value != "" && isDigits(value)
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
