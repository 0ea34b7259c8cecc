// Package logical reinterprets the physical arrays produced by the root
// parquetcore package under a schema leaf's LogicalType annotation (spec.md
// section 4.8): dates, times, timestamps, UUIDs, small-width integers,
// float16, string/enum/JSON/BSON all alias the underlying buffer, while
// DECIMAL performs a numeric conversion. Every adapter here is a pure
// function over already-decoded physical values; none of them touch a
// file or page.
package logical

import (
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/go-columnar/parquetcore"
	"github.com/go-columnar/parquetcore/format"
)

// Date converts INT32 days-since-epoch values into UTC midnight Time
// values.
func Date(days []int32) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = time.Unix(int64(d)*86400, 0).UTC()
	}
	return out
}

// unitNanosPerTick returns how many nanoseconds one tick of the unit spans,
// so a tick count can be scaled to a nanosecond count.
func unitNanosPerTick(unit format.TimeUnit) (int64, error) {
	switch {
	case unit.Millis != nil:
		return int64(time.Millisecond), nil
	case unit.Micros != nil:
		return int64(time.Microsecond), nil
	case unit.Nanos != nil:
		return 1, nil
	default:
		return 0, errors.Wrap(parquetcore.ErrMalformedMetadata, "logical: TimeUnit has no unit set")
	}
}

// Timestamp converts an INT64 tick-since-epoch column (millis, micros, or
// nanos per unit) into UTC Time values. The TIMESTAMP logical type's
// isAdjustedToUTC flag is not an input here and no timezone conversion is
// performed; every result is expressed in UTC.
func Timestamp(ticks []int64, unit format.TimeUnit) ([]time.Time, error) {
	nanosPerTick, err := unitNanosPerTick(unit)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(ticks))
	for i, t := range ticks {
		total := t * nanosPerTick
		out[i] = time.Unix(0, total).UTC()
	}
	return out, nil
}

// TimeOfDay converts a column of ticks-since-midnight (INT32 millis or
// INT64 micros/nanos, per the Parquet TIME logical type) into a Duration
// since midnight.
func TimeOfDay(ticks []int64, unit format.TimeUnit) ([]time.Duration, error) {
	nanosPerTick, err := unitNanosPerTick(unit)
	if err != nil {
		return nil, err
	}
	out := make([]time.Duration, len(ticks))
	for i, t := range ticks {
		out[i] = time.Duration(t * nanosPerTick)
	}
	return out, nil
}

// SmallInt reinterprets an INT32 physical column as one of the narrower
// signed or unsigned integer logical types (INT_8/16/32, UINT_8/16/32).
// bitWidth/signed come from the schema leaf's IntType logical annotation;
// out-of-range values are a sign the file's physical/logical pairing is
// inconsistent, which is reported rather than silently truncated.
func SmallInt(values []int32, bitWidth int8, signed bool) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		if signed {
			lo, hi := -(int64(1) << (bitWidth - 1)), (int64(1) << (bitWidth - 1)) - 1
			if int64(v) < lo || int64(v) > hi {
				return nil, errors.Wrapf(parquetcore.ErrDecode, "logical: value %d out of range for INT_%d", v, bitWidth)
			}
			out[i] = int64(v)
		} else {
			u := uint32(v)
			if bitWidth < 32 && u >= uint32(1)<<bitWidth {
				return nil, errors.Wrapf(parquetcore.ErrDecode, "logical: value %d out of range for UINT_%d", u, bitWidth)
			}
			out[i] = int64(u)
		}
	}
	return out, nil
}

// Decimal converts a physical column carrying a DECIMAL logical annotation
// into exact big.Rat values (integer/scaled-by-10^scale). Accepts the two
// physical encodings the Parquet spec allows for DECIMAL: INT32/INT64
// (already the unscaled integer) and BYTE_ARRAY/FIXED_LEN_BYTE_ARRAY
// (a big-endian two's-complement integer).
func Decimal(raw any, scale int32) ([]*big.Rat, error) {
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)

	toRat := func(unscaled *big.Int) *big.Rat {
		return new(big.Rat).SetFrac(unscaled, denom)
	}

	switch v := raw.(type) {
	case []int32:
		out := make([]*big.Rat, len(v))
		for i, x := range v {
			out[i] = toRat(big.NewInt(int64(x)))
		}
		return out, nil
	case []int64:
		out := make([]*big.Rat, len(v))
		for i, x := range v {
			out[i] = toRat(big.NewInt(x))
		}
		return out, nil
	case [][]byte:
		out := make([]*big.Rat, len(v))
		for i, b := range v {
			out[i] = toRat(bigIntFromTwosComplement(b))
		}
		return out, nil
	default:
		return nil, errors.Wrapf(parquetcore.ErrTypeMismatch, "logical: decimal physical type %T unsupported", raw)
	}
}

// bigIntFromTwosComplement decodes a big-endian two's-complement integer of
// arbitrary byte width, as DECIMAL on BYTE_ARRAY/FIXED_LEN_BYTE_ARRAY stores
// it.
func bigIntFromTwosComplement(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	n := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		// Negative: subtract 2^(8*len(b)).
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		n.Sub(n, modulus)
	}
	return n
}

// UUID reinterprets a 16-byte FIXED_LEN_BYTE_ARRAY column as UUID values.
func UUID(raw [][]byte) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, b := range raw {
		u, err := uuid.FromBytes(b)
		if err != nil {
			return nil, errors.Wrapf(parquetcore.ErrDecode, "logical: uuid element %d: %v", i, err)
		}
		out[i] = u
	}
	return out, nil
}

// Float16 reinterprets a 2-byte FIXED_LEN_BYTE_ARRAY column (IEEE 754
// binary16, little-endian per the Parquet FLOAT16 logical type) as
// float32, widening via the standard half-to-single bit manipulation.
func Float16(raw [][]byte) ([]float32, error) {
	out := make([]float32, len(raw))
	for i, b := range raw {
		if len(b) != 2 {
			return nil, errors.Wrapf(parquetcore.ErrMalformedMetadata, "logical: float16 element %d has length %d, want 2", i, len(b))
		}
		out[i] = float16ToFloat32(uint16(b[0]) | uint16(b[1])<<8)
	}
	return out, nil
}

func float16ToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := (h >> 10) & 0x1f
	frac := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal half -> normalize into a float32.
		e := 0
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		exp32 := uint32(127-15+1+e) << 23
		return math.Float32frombits(sign | exp32 | (frac << 13))
	case 0x1f:
		exp32 := uint32(0xff) << 23
		return math.Float32frombits(sign | exp32 | (frac << 13))
	default:
		exp32 := (uint32(exp) - 15 + 127) << 23
		return math.Float32frombits(sign | exp32 | (frac << 13))
	}
}

// String reinterprets a BYTE_ARRAY column as UTF-8 strings (covers STRING,
// ENUM, JSON, and BSON, all of which alias raw bytes at this layer — the
// distinction is purely in how a caller chooses to further parse them).
func String(raw [][]byte) []string {
	out := make([]string, len(raw))
	for i, b := range raw {
		out[i] = string(b)
	}
	return out
}

