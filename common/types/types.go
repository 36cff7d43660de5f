package types

import (
	"fmt"
	"math/big"
)

// Address hexadecimal account or contract address with 0x prefix, normalized to lowercase
type Address string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Address) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' {
		return fmt.Errorf("unexpected input for Address: %s", input)
	}
	return a.UnmarshalText(input[1 : len(input)-1])
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(input []byte) error {
	*a = Address(input)
	return nil
}

// Hash hexadecimal transaction hash with 0x prefix
type Hash string

// UnmarshalJSON implements json.Unmarshaler.
func (b *Hash) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' {
		return fmt.Errorf("unexpected input for Hash: %s", input)
	}
	return b.UnmarshalText(input[1 : len(input)-1])
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Hash) UnmarshalText(input []byte) error {
	*b = Hash(input)
	return nil
}

// Data hexadecimal byte string with 0x prefix, such as contract call data
type Data string

// UnmarshalJSON implements json.Unmarshaler.
func (d *Data) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' {
		return fmt.Errorf("unexpected input for Data: %s", input)
	}
	*d = Data(input[1 : len(input)-1])
	return nil
}

// BigInt big number represented by decimal string
type BigInt string

// UnmarshalJSON implements json.Unmarshaler. Empty and null decode to the
// empty string, meaning no value.
func (b *BigInt) UnmarshalJSON(input []byte) error {
	if len(input) >= 2 && input[0] == '"' {
		input = input[1 : len(input)-1]
	}
	if len(input) == 0 || string(input) == "null" {
		*b = ""
		return nil
	}
	return b.UnmarshalText(input)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *BigInt) UnmarshalText(input []byte) error {
	t := new(big.Int)
	err := t.UnmarshalText(input)
	if err != nil {
		return err
	}
	*b = BigInt(t.String())
	return nil
}
