package enum

import (
	"encoding/json"
	"fmt"
)

// PriceType identifies which price tier a sale line was charged at
type PriceType string

const (
	PriceType1      PriceType = "Price 1"
	PriceType2      PriceType = "Price 2"
	PriceType3      PriceType = "Price 3"
	PriceTypeCustom PriceType = "Custom"
)

func (t PriceType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known tiers
func (t PriceType) IsValid() bool {
	switch t {
	case PriceType1, PriceType2, PriceType3, PriceTypeCustom:
		return true
	}
	return false
}

func (t PriceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PriceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = ""
		return nil
	}
	pt := PriceType(str)
	if !pt.IsValid() {
		return fmt.Errorf("invalid price type %q", str)
	}
	*t = pt
	return nil
}

