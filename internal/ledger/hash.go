package ledger

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// HashText returns the hex blake3-256 digest of text.
func HashText(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
