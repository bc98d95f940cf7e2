package reviews

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gamehub/pkg/models"
)

// Review identifiers are content-addressed: the same review always derives
// the same id, with no storage involved. Wire format: rv_<gameId>_<12hex>.

const (
	digestLen = 12
	seedSep   = "|"
	// only the first 100 characters of the body participate, so editing the
	// tail of a long review keeps its identity
	bodyPrefixLen = 100
)

var idPattern = regexp.MustCompile(`^rv_(\d+)_([0-9a-f]{12})$`)

// Generate derives the identifier for a review of the given game.
// Identical inputs always produce identical ids; changing any input field
// changes the id.
func Generate(rev models.Review, gameID int) string {
	body := rev.Text
	if runes := []rune(body); len(runes) > bodyPrefixLen {
		body = string(runes[:bodyPrefixLen])
	}

	seed := strings.Join([]string{
		rev.RecommendationID,
		rev.Author.SteamID,
		strconv.Itoa(gameID),
		strconv.FormatInt(rev.TimestampCreated, 10),
		body,
	}, seedSep)

	sum := sha256.Sum256([]byte(seed))
	digest := hex.EncodeToString(sum[:])[:digestLen]
	return fmt.Sprintf("rv_%d_%s", gameID, digest)
}

// Parsed is the result of decomposing a valid identifier.
type Parsed struct {
	GameID int
	Digest string
}

// Parse decomposes an identifier. Any shape other than the strict
// rv_<digits>_<12 lowercase hex> pattern is rejected whole, never
// partially parsed.
func Parse(id string) (Parsed, bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return Parsed{}, false
	}
	gameID, err := strconv.Atoi(m[1])
	if err != nil || gameID <= 0 {
		return Parsed{}, false
	}
	return Parsed{GameID: gameID, Digest: m[2]}, true
}

// IsValid reports whether id is a well-formed review identifier.
func IsValid(id string) bool {
	_, ok := Parse(id)
	return ok
}

// Metadata describes an identifier for diagnostic output.
type Metadata struct {
	ID      string `json:"id"`
	Digest  string `json:"digest,omitempty"`
	GameID  int    `json:"gameId,omitempty"`
	IsValid bool   `json:"isValid"`
}

// Describe returns the metadata view of an identifier. Malformed input
// yields IsValid=false, never an error.
func Describe(id string) Metadata {
	p, ok := Parse(id)
	if !ok {
		return Metadata{ID: id}
	}
	return Metadata{ID: id, Digest: p.Digest, GameID: p.GameID, IsValid: true}
}
