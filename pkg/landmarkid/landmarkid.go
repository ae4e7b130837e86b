package landmarkid

import (
	"crypto/md5"
	"encoding/hex"
)

// FromNetwork derives the stable landmark identifier for a radio network from
// its advertised name and hardware address. The digest is used purely as a
// content hash; collisions are accepted and this is not a security boundary.
func FromNetwork(ssid, mac string) string {
	sum := md5.Sum([]byte(ssid + mac))
	return hex.EncodeToString(sum[:])
}
