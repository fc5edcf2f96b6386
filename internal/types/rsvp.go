// Package types implements special types for the WedSync backend.
package types

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RSVPStatus is the canonical response status of a guest.
//
// Guest data imported from the web app historically mixed English and
// localized values ("accepted" vs. "Confirmé"). Only the canonical values
// below are ever stored, everything else is folded at the boundary with
// ParseRSVPStatus.
type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
	RSVPMaybe    RSVPStatus = "maybe"
)

var ErrInvalidRSVPStatus = fmt.Errorf("not a valid RSVP status")

// foldTransformer strips diacritic marks after NFD decomposition so that
// "Confirmé" and "confirme" compare equal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases a status string and removes diacritics.
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		// Removing runes cannot fail, but keep the raw string as fallback
		return strings.ToLower(strings.TrimSpace(s))
	}

	return folded
}

// ParseRSVPStatus parses a status string into its canonical RSVPStatus.
// Localized aliases from the legacy guest schema are accepted.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch fold(s) {
	case "", "pending", "en attente":
		return RSVPPending, nil
	case "accepted", "confirme", "confirmed", "yes", "oui":
		return RSVPAccepted, nil
	case "declined", "refuse", "no", "non":
		return RSVPDeclined, nil
	case "maybe", "peut-etre":
		return RSVPMaybe, nil
	}

	return RSVPPending, fmt.Errorf("%w: %q", ErrInvalidRSVPStatus, s)
}

// UnmarshalJSON implements the json.Unmarshaler interface,
// normalizing aliases to the canonical status.
func (r *RSVPStatus) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" {
		return nil
	}

	status, err := ParseRSVPStatus(value)
	if err != nil {
		return err
	}

	*r = status
	return nil
}

// Accepted reports whether the status counts as attending.
func (r RSVPStatus) Accepted() bool {
	return r == RSVPAccepted
}

// Declined reports whether the status counts as not attending.
func (r RSVPStatus) Declined() bool {
	return r == RSVPDeclined
}

func (r RSVPStatus) String() string {
	return string(r)
}
