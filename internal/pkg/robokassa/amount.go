package robokassa

import (
	"fmt"
	"math/big"
)

// ParseAmount parses a gateway amount string exactly, without float rounding.
func ParseAmount(raw string) (*big.Rat, error) {
	amount, ok := new(big.Rat).SetString(raw)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

// AmountsEqual reports whether two amounts are exactly equal.
func AmountsEqual(expected, actual *big.Rat) bool {
	return expected.Cmp(actual) == 0
}
