package history

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ValidAddress reports whether input is a 0x-prefixed 20-byte hex address.
// Mixed-case input must carry a valid EIP-55 checksum.
func ValidAddress(input string) bool {
	if !strings.HasPrefix(input, "0x") {
		return false
	}
	if !common.IsHexAddress(input) {
		return false
	}
	body := input[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(input).Hex() == input
}
