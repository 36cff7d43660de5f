// Package txdata encodes and decodes the calldata of the simulated registry and
// marketplace contracts. The relay hands these payloads to the browser wallet
// unsigned; the submit endpoint decodes them back into typed calls.
package txdata

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"designmarket/common/types"
)

// Payload is an unsigned transaction for the front end to sign and submit.
type Payload struct {
	To   types.Address `json:"to"`
	Data types.Data    `json:"data"`
}

// SignText is the canonical text a wallet personal-signs when submitting a
// transaction; the server recovers the sender address from its signature.
func SignText(to types.Address, value *big.Int, data types.Data) string {
	if value == nil {
		value = new(big.Int)
	}
	return strings.ToLower(string(to)) + "|" + value.Text(10) + "|" + strings.ToLower(string(data))
}

var (
	stringT, _  = abi.NewType("string", "", nil)
	addressT, _ = abi.NewType("address", "", nil)
	uint256T, _ = abi.NewType("uint256", "", nil)

	registerArgs = abi.Arguments{{Type: stringT}, {Type: stringT}, {Type: stringT}}
	approveArgs  = abi.Arguments{{Type: addressT}, {Type: uint256T}}
	transferArgs = abi.Arguments{{Type: addressT}, {Type: uint256T}}
	listArgs     = abi.Arguments{{Type: addressT}, {Type: uint256T}, {Type: uint256T}}
	buyArgs      = abi.Arguments{{Type: addressT}, {Type: uint256T}}

	registerSelector = selector("registerDesign(string,string,string)")
	approveSelector  = selector("approve(address,uint256)")
	transferSelector = selector("transfer(address,uint256)")
	listSelector     = selector("listDesign(address,uint256,uint256)")
	buySelector      = selector("buyDesign(address,uint256)")
)

func selector(signature string) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(signature))[:4])
}

// decoded call forms returned by Decode

type RegisterDesign struct {
	TokenURI    string
	CreatorName string
	Description string
}

type Approve struct {
	Operator types.Address
	TokenID  uint64
}

type Transfer struct {
	To      types.Address
	TokenID uint64
}

type ListDesign struct {
	Registry types.Address
	TokenID  uint64
	Price    *big.Int
}

type BuyDesign struct {
	Registry types.Address
	TokenID  uint64
}

// EncodeRegisterDesign calldata for registerDesign(string,string,string)
func EncodeRegisterDesign(tokenURI, creatorName, description string) (types.Data, error) {
	return encode(registerSelector, registerArgs, tokenURI, creatorName, description)
}

// EncodeApprove calldata for approve(address,uint256)
func EncodeApprove(operator types.Address, tokenID uint64) (types.Data, error) {
	return encode(approveSelector, approveArgs, common.HexToAddress(string(operator)), new(big.Int).SetUint64(tokenID))
}

// EncodeTransfer calldata for transfer(address,uint256)
func EncodeTransfer(to types.Address, tokenID uint64) (types.Data, error) {
	return encode(transferSelector, transferArgs, common.HexToAddress(string(to)), new(big.Int).SetUint64(tokenID))
}

// EncodeListDesign calldata for listDesign(address,uint256,uint256)
func EncodeListDesign(registry types.Address, tokenID uint64, price *big.Int) (types.Data, error) {
	return encode(listSelector, listArgs, common.HexToAddress(string(registry)), new(big.Int).SetUint64(tokenID), price)
}

// EncodeBuyDesign calldata for buyDesign(address,uint256)
func EncodeBuyDesign(registry types.Address, tokenID uint64) (types.Data, error) {
	return encode(buySelector, buyArgs, common.HexToAddress(string(registry)), new(big.Int).SetUint64(tokenID))
}

func encode(selector string, args abi.Arguments, values ...interface{}) (types.Data, error) {
	packed, err := args.Pack(values...)
	if err != nil {
		return "", err
	}
	return types.Data("0x" + selector + hex.EncodeToString(packed)), nil
}

// Decode parses calldata into one of the typed call forms above.
func Decode(data types.Data) (interface{}, error) {
	raw, err := bytesOf(data)
	if err != nil {
		return nil, err
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("calldata shorter than a 4-byte selector")
	}
	sel, payload := hex.EncodeToString(raw[:4]), raw[4:]
	switch sel {
	case registerSelector:
		values, err := registerArgs.Unpack(payload)
		if err != nil {
			return nil, err
		}
		return &RegisterDesign{
			TokenURI:    values[0].(string),
			CreatorName: values[1].(string),
			Description: values[2].(string),
		}, nil
	case approveSelector:
		values, err := approveArgs.Unpack(payload)
		if err != nil {
			return nil, err
		}
		id, err := tokenID(values[1])
		if err != nil {
			return nil, err
		}
		return &Approve{Operator: addressOf(values[0]), TokenID: id}, nil
	case transferSelector:
		values, err := transferArgs.Unpack(payload)
		if err != nil {
			return nil, err
		}
		id, err := tokenID(values[1])
		if err != nil {
			return nil, err
		}
		return &Transfer{To: addressOf(values[0]), TokenID: id}, nil
	case listSelector:
		values, err := listArgs.Unpack(payload)
		if err != nil {
			return nil, err
		}
		id, err := tokenID(values[1])
		if err != nil {
			return nil, err
		}
		return &ListDesign{Registry: addressOf(values[0]), TokenID: id, Price: values[2].(*big.Int)}, nil
	case buySelector:
		values, err := buyArgs.Unpack(payload)
		if err != nil {
			return nil, err
		}
		id, err := tokenID(values[1])
		if err != nil {
			return nil, err
		}
		return &BuyDesign{Registry: addressOf(values[0]), TokenID: id}, nil
	}
	return nil, fmt.Errorf("unknown function selector: 0x%s", sel)
}

func bytesOf(data types.Data) ([]byte, error) {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return nil, fmt.Errorf("calldata is not 0x prefixed")
	}
	return hex.DecodeString(s[2:])
}

func addressOf(v interface{}) types.Address {
	return types.Address(strings.ToLower(v.(common.Address).Hex()))
}

func tokenID(v interface{}) (uint64, error) {
	b := v.(*big.Int)
	if !b.IsUint64() {
		return 0, fmt.Errorf("token id out of range: %s", b)
	}
	return b.Uint64(), nil
}
