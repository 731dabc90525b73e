package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrNotInteger = errors.New("encoded move must be an integer")
	ErrOutOfRange = errors.New("encoded move is out of range")
)

// Encoder maps moves to small non-negative integers and back, so a move can be
// stored as a single 32-bit field. Encode only accepts valid moves and always
// returns a value in [0, MaxValue()]. Decode(Encode(m)) == m.
type Encoder[M any] interface {
	Encode(move M) int32
	Decode(encoded int32) (M, error)
	MaxValue() int32
}

// CheckRange reports whether encoded is a value enc can have produced.
func CheckRange[M any](enc Encoder[M], encoded int32) error {
	if encoded < 0 || encoded > enc.MaxValue() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, encoded, enc.MaxValue())
	}
	return nil
}

// ParseEncoded turns a transported JSON number into an encoded move.
func ParseEncoded(number json.Number) (int32, error) {
	value, err := strconv.ParseInt(string(number), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: got %q", ErrNotInteger, string(number))
	}
	if value < 0 || value > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d does not fit 32 bits", ErrOutOfRange, value)
	}
	return int32(value), nil
}
