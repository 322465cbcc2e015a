package acctocr

import "github.com/submersibletoaster/acctocr/examine"

// IsValid reports whether digits is exactly nine decimal digits whose
// weighted sum, leftmost weight 9 down to rightmost weight 1, is divisible
// by 11. Anything else, including "", is invalid.
func IsValid(digits string) bool {
	if len(digits) != examine.Positions {
		return false
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * (examine.Positions - i)
	}
	return sum%11 == 0
}
