package cursor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/errs"
)

// maxMarketCapScale bounds the exponent and digit count of a decoded market
// cap. Comparing or rendering a decimal costs time proportional to both.
const maxMarketCapScale = 1000

type envelope struct {
	Mode SortMode        `json:"mode"`
	Key  json.RawMessage `json:"key"`
}

type typeNameKey struct {
	Name            *string             `json:"name"`
	Type            *entities.TokenType `json:"type"`
	InsertedAt      *time.Time          `json:"inserted_at"`
	ContractAddress *common.Address     `json:"contract_address_hash"`
}

type marketRankKey struct {
	MarketCap       *decimal.Decimal `json:"circulating_market_cap"`
	HolderCount     *int64           `json:"holder_count"`
	Name            *string          `json:"name"`
	ContractAddress *common.Address  `json:"contract_address_hash"`
}

// Encode turns c into an opaque, URL-safe token
func Encode(c Cursor) (string, error) {
	var key interface{}
	switch c := c.(type) {
	case TypeName:
		key = typeNameKey{
			Name:            c.Name,
			Type:            &c.Type,
			InsertedAt:      &c.InsertedAt,
			ContractAddress: &c.ContractAddress,
		}
	case MarketRank:
		k := marketRankKey{
			HolderCount:     c.HolderCount,
			Name:            c.Name,
			ContractAddress: &c.ContractAddress,
		}
		if c.MarketCap.Valid {
			k.MarketCap = &c.MarketCap.Decimal
		}
		key = k
	default:
		return "", fmt.Errorf("unsupported cursor type %T", c)
	}

	raw, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor key: %w", err)
	}
	data, err := json.Marshal(envelope{Mode: c.Mode(), Key: raw})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeTypeName parses a token produced by Encode for a TypeName cursor.
// An empty token means the start of the listing and yields nil.
func DecodeTypeName(token string) (*TypeName, error) {
	if token == "" {
		return nil, nil
	}

	var k typeNameKey
	if err := decode(token, ModeTypeName, &k); err != nil {
		return nil, err
	}
	if k.Type == nil || *k.Type == "" || k.InsertedAt == nil || k.ContractAddress == nil {
		return nil, errs.InvalidArgument("cursor is missing a required field")
	}

	return &TypeName{
		Name:            k.Name,
		Type:            *k.Type,
		InsertedAt:      *k.InsertedAt,
		ContractAddress: *k.ContractAddress,
	}, nil
}

// DecodeMarketRank parses a token produced by Encode for a MarketRank cursor.
// An empty token means the start of the listing and yields nil.
func DecodeMarketRank(token string) (*MarketRank, error) {
	if token == "" {
		return nil, nil
	}

	var k marketRankKey
	if err := decode(token, ModeMarketRank, &k); err != nil {
		return nil, err
	}
	if k.ContractAddress == nil {
		return nil, errs.InvalidArgument("cursor is missing a required field")
	}

	c := &MarketRank{
		HolderCount:     k.HolderCount,
		Name:            k.Name,
		ContractAddress: *k.ContractAddress,
	}
	if k.MarketCap != nil {
		if !withinScale(*k.MarketCap) {
			return nil, errs.InvalidArgument("cursor market cap is out of range")
		}
		c.MarketCap = decimal.NewNullDecimal(*k.MarketCap)
	}
	return c, nil
}

func decode(token string, mode SortMode, key interface{}) error {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return errs.InvalidArgument("cursor is not a valid token")
	}

	var env envelope
	if err := strictUnmarshal(data, &env); err != nil {
		return errs.InvalidArgument("cursor is not a valid token")
	}
	if env.Mode != mode {
		return errs.InvalidArgument("cursor belongs to sort mode %q, expected %q", env.Mode, mode)
	}
	if err := strictUnmarshal(env.Key, key); err != nil {
		return errs.InvalidArgument("cursor key does not match sort mode %q", mode)
	}

	return nil
}

func withinScale(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxMarketCapScale || exp < -maxMarketCapScale {
		return false
	}
	return d.NumDigits() <= maxMarketCapScale
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after cursor value")
	}
	return nil
}
