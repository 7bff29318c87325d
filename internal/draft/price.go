package draft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a decimal amount kept exactly as the text it arrived in. Catalog
// prices may come from upstream as JSON numbers or strings; both are stored
// verbatim so a round-trip never reformats them.
type Price string

func PriceFromDecimal(d decimal.Decimal) Price {
	return Price(d.StringFixed(2))
}

// Decimal parses the price. ok is false when the text is not a number.
func (p Price) Decimal() (d decimal.Decimal, ok bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(string(p)))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
	case '{', '[':
		return fmt.Errorf("price must be a number or string, got %s", data)
	default:
		*p = Price(data)
	}
	return nil
}
