package domain

import "strings"

const QRPrefix = "TICKET:"

// DefaultQRTrailer is the suffix the door scanner expects on every payload.
const DefaultQRTrailer = ":Beto William:2024-03-22"

// FormatQRPayload builds the string encoded in a ticket's QR code.
func FormatQRPayload(ticketID, eventName, eventDate string) string {
	return QRPrefix + ticketID + ":" + eventName + ":" + eventDate
}

// QRScanner extracts ticket ids from scanned payloads. Only payloads that
// start with QRPrefix and end with Trailer are accepted; everything else is
// ignored so the camera keeps scanning. An empty Trailer accepts nothing.
//
// The id is the first field between the prefix and the trailer.
type QRScanner struct {
	Trailer string
}

func (s QRScanner) Parse(payload string) (string, bool) {
	if s.Trailer == "" || !strings.HasPrefix(payload, QRPrefix) {
		return "", false
	}

	rest := strings.TrimPrefix(payload, QRPrefix)
	if !strings.HasSuffix(rest, s.Trailer) {
		return "", false
	}

	id, _, _ := strings.Cut(strings.TrimSuffix(rest, s.Trailer), ":")
	if id == "" {
		return "", false
	}

	return id, true
}
