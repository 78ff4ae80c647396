package services

import (
	"encoding/hex"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xssnick/tonutils-go/address"
)

const accountIdHexLen = 64

var friendlyPrefixes = []string{"UQ", "EQ"}

// ToFriendlyAddress returns the user-facing (bounceable, mainnet) form of a
// wallet address. Anything it cannot convert is returned unchanged.
func ToFriendlyAddress(addr string) string {
	addr = strings.TrimSpace(addr)

	for _, prefix := range friendlyPrefixes {
		if strings.HasPrefix(addr, prefix) {
			return addr
		}
	}

	if strings.Contains(addr, ":") {
		return encodeRaw(addr, addr)
	}

	if accountId, ok := normalizeAccountId(addr); ok {
		return encodeRaw("0:"+accountId, addr)
	}

	return addr
}

// normalizeAccountId reduces a bare 64-66 character hex id to exactly 64 characters.
func normalizeAccountId(s string) (string, bool) {
	if len(s) < accountIdHexLen || len(s) > accountIdHexLen+2 || !isHex(s) {
		return "", false
	}

	if len(s) == accountIdHexLen+1 && s[0] == '0' {
		return s[1:], true
	}

	return s[len(s)-accountIdHexLen:], true
}

func encodeRaw(raw, original string) string {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 || len(parts[1]) != accountIdHexLen || !isHex(parts[1]) {
		log.Debug().Msgf("Address %s is not a raw workchain:hex address, leaving as is", original)
		return original
	}

	addr, err := address.ParseRawAddr(raw)
	if err != nil {
		log.Debug().Msgf("Failed to parse raw address %s: %s", original, err)
		return original
	}

	addr.SetBounce(true)
	addr.SetTestnetOnly(false)

	return addr.String()
}

func isHex(s string) bool {
	if len(s)%2 == 1 {
		s = "0" + s
	}

	_, err := hex.DecodeString(s)
	return err == nil
}
