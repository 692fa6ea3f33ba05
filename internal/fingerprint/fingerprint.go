package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes keep game and trend keys from ever colliding even when
// two documents happen to serialize identically. The version suffix allows
// the canonical form to evolve without silently reusing stale cache
// entries.
const (
	DomainGames  = "trendline/games/v1"
	DomainTrends = "trendline/trends/v1"
)

// UpcomingSnapshotKey is the reserved key for the pinned upcoming-games
// snapshot. The snapshot query has no parameters, so its key is a fixed
// name rather than a content hash.
const UpcomingSnapshotKey = "upcoming_games_empty_body"

// Games fingerprints a canonical game filter document.
func Games(doc map[string]any) (string, error) {
	return keyFor(DomainGames, doc)
}

// Trends fingerprints a canonical trend filter document.
func Trends(doc map[string]any) (string, error) {
	return keyFor(DomainTrends, doc)
}

func keyFor(domain string, doc map[string]any) (string, error) {
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// removes any ambiguity about where the domain ends and the payload begins.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
