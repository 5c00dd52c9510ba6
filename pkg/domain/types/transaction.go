package types

import "fmt"

// TransactionType represents the intent behind a property query. The empty
// value means the intent was not expressed.
type TransactionType string

const (
	TransactionRent   TransactionType = "rent"
	TransactionBuy    TransactionType = "buy"
	TransactionInvest TransactionType = "invest"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TransactionRent, TransactionBuy, TransactionInvest}
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionRent, TransactionBuy, TransactionInvest:
		return true
	default:
		return false
	}
}

// IsSet reports whether a transaction type was expressed at all.
func (t TransactionType) IsSet() bool {
	return t != ""
}

// String returns the string representation of the transaction type
func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType parses a string into a TransactionType. An empty
// input yields the unset type without error.
func ParseTransactionType(s string) (TransactionType, error) {
	if s == "" {
		return "", nil
	}
	tt := TransactionType(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return tt, nil
}
