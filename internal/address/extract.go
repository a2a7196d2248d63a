package address

import (
	"regexp"
	"strings"
)

var (
	// Local postal codes are three digits, an optional space, then two digits.
	zipPattern = regexp.MustCompile(`\d{3}\s?\d{2}`)
	// Trailing house number, optionally with a /= or - suffix ("2906/64", "12a").
	numberPattern = regexp.MustCompile(`(\d+[/\-]?\w*)$`)
)

// Address is the best-effort decomposition of a free-text address.
// Empty fields mean the component could not be determined.
type Address struct {
	Street       string
	StreetNumber string
	ZipCode      string
	City         string
}

// Extract decomposes a raw address string into street, street number,
// zip code and city. The postal-code shape is the only reliable anchor
// in unstructured input; everything else is positional relative to it.
// It never fails: unrecognized input yields a partially or fully empty
// result.
func Extract(raw string) Address {
	var addr Address
	if raw == "" {
		return addr
	}

	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return addr
	}

	// Find zip and city. The first segment carrying a postal code wins;
	// whatever else that segment holds is the city, falling back to the
	// previous segment when the zip stands alone.
	for i, part := range parts {
		match := zipPattern.FindString(part)
		if match == "" {
			continue
		}
		addr.ZipCode = strings.ReplaceAll(match, " ", "")
		remainder := strings.TrimSpace(strings.Replace(part, match, "", 1))
		if remainder != "" {
			addr.City = remainder
		} else if i > 0 {
			addr.City = parts[i-1]
		}
		if i == 0 {
			// The zip lived in the street slot; what is left of the
			// segment is the street candidate now.
			parts[0] = remainder
		}
		break
	}

	// Street and number are expected in the first segment, unless that
	// segment turned out to be the city itself.
	if street := parts[0]; street != "" && street != addr.City {
		if num := numberPattern.FindString(street); num != "" {
			addr.StreetNumber = num
			addr.Street = strings.TrimSpace(strings.TrimSuffix(street, num))
		} else {
			addr.Street = street
		}
	}

	if addr.City == "" && len(parts) > 1 {
		addr.City = parts[1]
	}

	return addr
}
