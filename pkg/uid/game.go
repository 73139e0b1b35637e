package uid

import (
	"encoding/hex"

	"lukechampine.com/frand"
)

// GenerateGameID returns a random 128-bit identifier, hex encoded.
func GenerateGameID() string {
	return hex.EncodeToString(frand.Bytes(16))
}
