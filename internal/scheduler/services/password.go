package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 20

	// PasswordSpecials lists the characters that count as special.
	PasswordSpecials = "!@#&()–{}:;',?/*~$^+=<>"
)

// CheckPasswordStrength requires 8 to 20 characters with at least one
// digit, one lowercase letter, one uppercase letter and one special
// character from PasswordSpecials. Letters and digits are ASCII only.
func CheckPasswordStrength(password []byte) error {
	p := string(password)
	n := len([]rune(p))
	if n < minPasswordLen || n > maxPasswordLen {
		return fmt.Errorf("%w: length %d outside %d..%d", common.ErrWeakPassword, n, minPasswordLen, maxPasswordLen)
	}

	var digit, lower, upper, special bool
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		}
	}

	if !digit || !lower || !upper || !special {
		return common.ErrWeakPassword
	}
	return nil
}
