package services

import (
	"io"
	"log/slog"
	"net/mail"
	"strings"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidEmail accepts a bare addr-spec with a dotted domain. Display names
// and angle brackets are rejected.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}
	_, domainPart, ok := strings.Cut(addr.Address, "@")
	return ok && strings.Contains(domainPart, ".") &&
		!strings.HasPrefix(domainPart, ".") && !strings.HasSuffix(domainPart, ".")
}
