package nistitl

import "github.com/pborman/uuid"

// newTCN returns a fresh, unique transaction control number, the default
// value record type 1's tag 9 (TCN) is auto-populated with.
func newTCN() string {
	return uuid.NewRandom().String()
}
