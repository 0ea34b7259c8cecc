package logical

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/parquetcore"
	"github.com/go-columnar/parquetcore/format"
)

func TestDateConvertsDaysToUTCMidnight(t *testing.T) {
	got := Date([]int32{0, 1})
	require.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), got[0])
	require.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), got[1])
}

func TestTimestampMillis(t *testing.T) {
	unit := format.TimeUnit{Millis: &struct{}{}}
	got, err := Timestamp([]int64{1000}, unit)
	require.NoError(t, err)
	require.Equal(t, time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC), got[0])
}

func TestTimestampRejectsUnsetUnit(t *testing.T) {
	_, err := Timestamp([]int64{1}, format.TimeUnit{})
	require.ErrorIs(t, err, parquetcore.ErrMalformedMetadata)
}

func TestTimeOfDayMicros(t *testing.T) {
	unit := format.TimeUnit{Micros: &struct{}{}}
	got, err := TimeOfDay([]int64{1500000}, unit)
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, got[0])
}

func TestSmallIntSignedInRangeAndOutOfRange(t *testing.T) {
	got, err := SmallInt([]int32{127, -128}, 8, true)
	require.NoError(t, err)
	require.Equal(t, []int64{127, -128}, got)

	_, err = SmallInt([]int32{128}, 8, true)
	require.ErrorIs(t, err, parquetcore.ErrDecode)
}

func TestSmallIntUnsignedInRangeAndOutOfRange(t *testing.T) {
	got, err := SmallInt([]int32{255}, 8, false)
	require.NoError(t, err)
	require.Equal(t, []int64{255}, got)

	_, err = SmallInt([]int32{256}, 8, false)
	require.ErrorIs(t, err, parquetcore.ErrDecode)
}

func TestDecimalFromInt64Unscaled(t *testing.T) {
	got, err := Decimal([]int64{12345}, 2)
	require.NoError(t, err)
	require.Equal(t, 0, got[0].Cmp(big.NewRat(12345, 100)))
}

func TestDecimalFromTwosComplementBytes(t *testing.T) {
	got, err := Decimal([][]byte{{0xFF, 0xFF}}, 0)
	require.NoError(t, err)
	require.Equal(t, 0, got[0].Cmp(big.NewRat(-1, 1)))
}

func TestDecimalRejectsUnsupportedPhysicalType(t *testing.T) {
	_, err := Decimal([]float64{1.0}, 0)
	require.ErrorIs(t, err, parquetcore.ErrTypeMismatch)
}

func TestUUIDRoundTripsBytes(t *testing.T) {
	raw := make([]byte, 16)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	got, err := UUID([][]byte{raw})
	require.NoError(t, err)

	var want uuid.UUID
	copy(want[:], raw)
	require.Equal(t, want, got[0])
}

func TestUUIDRejectsWrongLength(t *testing.T) {
	_, err := UUID([][]byte{{1, 2, 3}})
	require.ErrorIs(t, err, parquetcore.ErrDecode)
}

func TestFloat16ConvertsOneAndZero(t *testing.T) {
	// binary16 1.0 = 0x3C00, stored little-endian.
	got, err := Float16([][]byte{{0x00, 0x3C}, {0x00, 0x00}})
	require.NoError(t, err)
	require.Equal(t, float32(1.0), got[0])
	require.Equal(t, float32(0.0), got[1])
}

func TestFloat16RejectsWrongLength(t *testing.T) {
	_, err := Float16([][]byte{{0x00}})
	require.ErrorIs(t, err, parquetcore.ErrMalformedMetadata)
}

func TestStringAliasesBytes(t *testing.T) {
	got := String([][]byte{[]byte("abc"), []byte("")})
	require.Equal(t, []string{"abc", ""}, got)
}
