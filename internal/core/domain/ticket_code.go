package domain

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// TicketCodeAlphabet holds the digits and the uppercase letters that cannot
// be mistaken for a digit on a printed ticket (no I, O, Q, S, Z).
const TicketCodeAlphabet = "0123456789ABCDEFGHJKLMNPRTUVWXY"

const TicketCodeLength = 6

// TicketCodeGenerator draws codes uniformly, with replacement, from
// TicketCodeAlphabet. It does not check codes against the store; uniqueness
// is enforced by the tickets primary key.
type TicketCodeGenerator struct {
	Rand io.Reader
}

func (g TicketCodeGenerator) NewCode() (string, error) {
	src := g.Rand
	if src == nil {
		src = rand.Reader
	}

	max := big.NewInt(int64(len(TicketCodeAlphabet)))

	var b strings.Builder
	b.Grow(TicketCodeLength)
	for i := 0; i < TicketCodeLength; i++ {
		n, err := rand.Int(src, max)
		if err != nil {
			return "", fmt.Errorf("generate ticket code: %w", err)
		}
		b.WriteByte(TicketCodeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

func IsTicketCode(s string) bool {
	if len(s) != TicketCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(TicketCodeAlphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
