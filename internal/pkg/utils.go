package pkg

import "strings"

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// IsValidWalletAddress checks the chain's base58 address shape. Signature
// verification belongs to the wallet adapter, not here.
func IsValidWalletAddress(address string) bool {
	if len(address) < 32 || len(address) > 44 {
		return false
	}
	for _, r := range address {
		if !strings.ContainsRune(base58Alphabet, r) {
			return false
		}
	}
	return true
}
