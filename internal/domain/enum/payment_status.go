package enum

import (
	"encoding/json"
)

// PaymentStatus represents how much of a sale has been paid.
// A sale only moves forward through these states.
type PaymentStatus int

const (
	PaymentStatusUnpaid        PaymentStatus = 0
	PaymentStatusPartiallyPaid PaymentStatus = 1
	PaymentStatusPaid          PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	return [...]string{"Unpaid", "Partially Paid", "Paid"}[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = PaymentStatusUnpaid
	case "Partially Paid":
		*s = PaymentStatusPartiallyPaid
	case "Paid":
		*s = PaymentStatusPaid
	}
	return nil
}

