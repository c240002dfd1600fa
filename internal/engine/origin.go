package engine

import (
	"net"
	"net/url"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// ValidateOrigin implements spec.md §4.5.2 step 3 and the Open
// Question (b) resolution recorded in DESIGN.md: an RP ID that is a
// bare IP literal accepts any scheme/port as long as the origin's
// host matches exactly; any other RP ID additionally requires the
// https scheme.
func ValidateOrigin(origin, rpID string) error {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Hostname() == "" {
		return apperr.InvalidOrigin(origin, rpID)
	}

	if parsed.Hostname() != rpID {
		return apperr.InvalidOrigin(origin, rpID)
	}

	if net.ParseIP(rpID) != nil {
		return nil
	}
	if parsed.Scheme != "https" {
		return apperr.InvalidOrigin(origin, rpID)
	}
	return nil
}
