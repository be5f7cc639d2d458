package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents the lifecycle state of a quote.
// Transitions are monotonic: Draft -> Sent -> Approved, no back-edges.
type QuoteStatus int

const (
	QuoteStatusDraft    QuoteStatus = 0
	QuoteStatusSent     QuoteStatus = 1
	QuoteStatusApproved QuoteStatus = 2
)

func (s QuoteStatus) String() string {
	return [...]string{"Draft", "Sent", "Approved"}[s]
}

// CanSend reports whether a send is legal from this state.
// Re-sending an already-sent quote is permitted and does not change state.
func (s QuoteStatus) CanSend() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

// CanApprove reports whether an approval is legal from this state.
func (s QuoteStatus) CanApprove() bool {
	return s == QuoteStatusSent
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = QuoteStatusDraft
	case "Sent":
		*s = QuoteStatusSent
	case "Approved":
		*s = QuoteStatusApproved
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
