// Package codings implements the universal and non-universal integer
// codings this module is built around: Elias-delta, Elias-omega,
// Fibonacci, Unary, Truncated-Binary, Golomb and Rice. Every coding is a
// stateless value, safe to share across goroutines, that reads and writes
// non-negative integers through a *bitio.Reader/*bitio.Writer cursor.
package codings

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/psanford/codings/bitio"
)

// ArgumentError reports a caller-side contract violation: a nil cursor, a
// negative value, or a value outside a coding's declared domain (e.g. a
// Truncated-Binary value >= N). It is always fatal to the current call
// only; library state is unaffected.
type ArgumentError struct {
	Coding string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("codings: %s: %s", e.Coding, e.Reason)
}

func argErr(coding, reason string) error {
	return &ArgumentError{Coding: coding, Reason: reason}
}

// Coding is the contract every coding in this package satisfies: encoding
// and decoding non-negative integers in three widths. Fixed covers uint32
// values, Wide covers 63-bit values, and Unbounded
// covers arbitrary-precision values. encodePositive* return the number of
// bits written so callers can measure encoded length without a second
// pass.
type Coding interface {
	EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error)
	DecodePositiveFixed(r *bitio.Reader) (uint32, error)
	EncodePositiveWide(w *bitio.Writer, v uint64) (int, error)
	DecodePositiveWide(r *bitio.Reader) (uint64, error)
	EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error)
	DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error)
}

// Universal is a tagged refinement of Coding: it promises to accept every
// non-negative integer. EliasDelta, EliasOmega and Fibonacci satisfy it.
// Unary (capped at a maximum run length), TruncatedBinary (finite
// alphabet), Golomb and Rice (unary quotient, Unbounded limited to uint64)
// do not.
type Universal interface {
	Coding
	universal()
}

var errNilWriter = errors.New("nil writer")
var errNilReader = errors.New("nil reader")
var errNilBigInt = errors.New("nil value")
var errNegativeBigInt = errors.New("negative value")

// checkEncodeArgs is the validation gate every coding's public
// EncodePositive* method calls (or the BigInt variant) before delegating
// to its own unexported implementation.
func checkEncodeArgs(coding string, w *bitio.Writer) error {
	if w == nil {
		return argErr(coding, errNilWriter.Error())
	}
	return nil
}

func checkDecodeArgs(coding string, r *bitio.Reader) error {
	if r == nil {
		return argErr(coding, errNilReader.Error())
	}
	return nil
}

func checkEncodeBigArgs(coding string, w *bitio.Writer, v *big.Int) error {
	if err := checkEncodeArgs(coding, w); err != nil {
		return err
	}
	if v == nil {
		return argErr(coding, errNilBigInt.Error())
	}
	if v.Sign() < 0 {
		return argErr(coding, errNegativeBigInt.Error())
	}
	return nil
}
