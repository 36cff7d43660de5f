package utils

import (
	"fmt"
	"math/big"
	"strconv"

	. "designmarket/common/types"
)

// HexToBigInt converts a hexadecimal string without 0x prefix to a big number BigInt (illegal input will return 0)
func HexToBigInt(hex string) BigInt {
	b := new(big.Int)
	b.SetString(hex, 16)
	return BigInt(b.Text(10))
}

// ParseAddress converts a hexadecimal string prefixed with 0x to a lowercase address
func ParseAddress(hex []byte) (Address, error) {
	if len(hex) != 42 {
		return "", fmt.Errorf("length is not 42")
	}
	if hex[0] != '0' || (hex[1] != 'x' && hex[1] != 'X') {
		return "", fmt.Errorf("prefix is not 0x")
	}
	hex[1] = 'x'
	for i := 2; i < 42; i++ {
		c := hex[i]
		if ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') {
			continue
		}
		if 'A' <= c && c <= 'F' {
			hex[i] = c + 32
			continue
		}
		return "", fmt.Errorf("illegal character: %v", c)
	}
	return Address(hex), nil
}

// BigToAddress converts large numbers into addresses (too large numbers will truncate the previous ones)
func BigToAddress(big *big.Int) Address {
	addr := "0000000000000000000000000000000000000000"
	if big != nil {
		addr += big.Text(16)
	}
	return Address("0x" + addr[len(addr)-40:])
}

// ParseEther converts a decimal ether amount string to wei (18 decimal places)
func ParseEther(s string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	wei := r.Mul(r, new(big.Rat).SetInt64(1e18))
	if !wei.IsInt() {
		return nil, fmt.Errorf("amount has more than 18 decimal places: %s", s)
	}
	return wei.Num(), nil
}

// ParsePagination Parsing pagination parameters, maximum 100 records, default return 10 records on page 1
func ParsePagination(pageStr, sizeStr string) (int, int) {
	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(sizeStr)
	if size < 1 || size > 100 {
		size = 10
	}

	return page, size
}
