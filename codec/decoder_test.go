package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qperrors "github.com/transceptor/qpack/errors"
)

func decodeDefault(t *testing.T, data []byte) Value {
	t.Helper()
	v, err := NewDecoder(nil).Decode(data)
	require.NoError(t, err)
	return v
}

func TestDecoder_EmptyInput(t *testing.T) {
	_, err := NewDecoder(nil).Decode(nil)
	var qerr *qperrors.Error
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, qperrors.KindEmptyInput, qerr.Kind)

	_, err = NewDecoder(nil).Decode([]byte{})
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, qperrors.KindEmptyInput, qerr.Kind)
}

func TestDecoder_Scalars(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want Value
	}{
		{"null", []byte{TagNull}, Null},
		{"true", []byte{TagTrue}, Bool(true)},
		{"false", []byte{TagFalse}, Bool(false)},
		{"tiny int", []byte{0x2a}, Int(42)},
		{"tiny negative", []byte{0x40}, Int(-1)},
		{"int8", []byte{TagInt8, 0x9c}, Int(-100)},
		{"int16", []byte{TagInt16, 0x2c, 0x01}, Int(300)},
		{"int32", []byte{TagInt32, 0x00, 0x00, 0x10, 0x00}, Int(1 << 20)},
		{"int64", []byte{TagInt64, 0, 0, 0, 0, 0, 1, 0, 0}, Int(1 << 40)},
		{"double 0", []byte{TagDouble0}, Double(0)},
		{"double 1", []byte{TagDouble1}, Double(1)},
		{"double -1", []byte{TagDoubleN1}, Double(-1)},
		{"double", []byte{TagDouble, 0, 0, 0, 0, 0, 0, 0xf8, 0x3f}, Double(1.5)},
		{"raw strips terminator", []byte{rawFirst + 3, 'a', 'b', 0x00}, Str("ab")},
		{"raw zero length", []byte{rawFirst}, Str("")},
		{"raw8", []byte{TagRaw8, 3, 'x', 'y', 0x00}, Str("xy")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, decodeDefault(t, c.in))
		})
	}
}

func TestDecoder_SmallContainerEquivalence(t *testing.T) {
	inline := []byte{TagArray0 + 2, 0x01, 0x02}
	bracketed := []byte{TagArrayOpen, 0x01, 0x02, TagArrayClose}

	want := List{Int(1), Int(2)}
	require.Equal(t, want, decodeDefault(t, inline))
	require.Equal(t, want, decodeDefault(t, bracketed))

	// Both empty forms yield the same allocated empty List.
	require.Equal(t, List{}, decodeDefault(t, []byte{TagArray0}))
	require.Equal(t, List{}, decodeDefault(t, []byte{TagArrayOpen, TagArrayClose}))
}

func TestDecoder_BracketedMap(t *testing.T) {
	data := []byte{
		TagMapOpen,
		rawFirst + 2, 'a', 0x00, 0x01,
		rawFirst + 2, 'b', 0x00, 0x02,
		TagMapClose,
	}
	want := NewMap(
		Entry{Key: Str("a"), Value: Int(1)},
		Entry{Key: Str("b"), Value: Int(2)},
	)
	require.Equal(t, want, decodeDefault(t, data))
}

func TestDecoder_NestedContainers(t *testing.T) {
	data := []byte{
		TagArray0 + 2,
		TagMap0 + 1, 0x01, TagTrue, // {1: true}
		TagArray0, // []
	}
	want := List{
		NewMap(Entry{Key: Int(1), Value: Bool(true)}),
		List{},
	}
	require.Equal(t, want, decodeDefault(t, data))
}

func TestDecoder_CloseAtValuePosition(t *testing.T) {
	for _, data := range [][]byte{
		{TagArrayClose},
		{TagMapClose},
		{TagArray0 + 1, TagMapClose},
	} {
		_, err := NewDecoder(nil).Decode(data)
		var qerr *qperrors.Error
		require.ErrorAs(t, err, &qerr, "input %x", data)
		assert.Equal(t, qperrors.KindUnexpectedToken, qerr.Kind)
	}
}

func TestDecoder_UnknownTag(t *testing.T) {
	_, err := NewDecoder(nil).Decode([]byte{TagArray0 + 1, TagHook})
	var qerr *qperrors.Error
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, qperrors.KindUnknownTag, qerr.Kind)
	assert.Equal(t, TagHook, qerr.Tag)
	assert.Equal(t, 1, qerr.Offset)
}

func TestDecoder_Truncated(t *testing.T) {
	cases := [][]byte{
		{TagInt64, 0x01},                  // 8-byte integer, 1 byte present
		{TagInt16, 0x01},                  // 2-byte integer, 1 byte present
		{TagDouble, 0, 0, 0},              // 8-byte double, 3 bytes present
		{TagRaw8},                         // missing length byte
		{TagRaw8, 5, 'a'},                 // raw payload shorter than length
		{rawFirst + 10, 'a', 'b'},         // inline raw shorter than length
		{TagRaw32, 0xff, 0xff, 0xff, 0x7f}, // huge length, no payload
		{TagArrayOpen, 0x01},              // bracket never closed
		{TagMapOpen, 0x01, 0x02},          // bracket never closed
	}
	for _, data := range cases {
		_, err := NewDecoder(nil).Decode(data)
		var qerr *qperrors.Error
		require.ErrorAs(t, err, &qerr, "input %x", data)
		assert.Equal(t, qperrors.KindTruncated, qerr.Kind, "input %x", data)
	}
}

func TestDecoder_FixedCountRunsPastEnd(t *testing.T) {
	// ARRAY3 with only two elements present: the third read hits end of
	// stream at value position.
	_, err := NewDecoder(nil).Decode([]byte{TagArray0 + 3, 0x01, 0x02})
	var qerr *qperrors.Error
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, qperrors.KindUnexpectedToken, qerr.Kind)
}

func TestDecoder_InvalidMapKey(t *testing.T) {
	// MAP1 with a boolean key.
	_, err := NewDecoder(nil).Decode([]byte{TagMap0 + 1, TagTrue, 0x01})
	var qerr *qperrors.Error
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, qperrors.KindUnexpectedToken, qerr.Kind)
}

func TestDecoder_DepthLimit(t *testing.T) {
	nested := func(depth int) []byte {
		data := make([]byte, 0, depth+1)
		for i := 0; i < depth; i++ {
			data = append(data, TagArray0+1)
		}
		return append(data, 0x00)
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetDecodeMaxDepth(4))

	_, err := NewDecoder(cfg).Decode(nested(4))
	require.NoError(t, err)

	_, err = NewDecoder(cfg).Decode(nested(5))
	var qerr *qperrors.Error
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, qperrors.KindExcessiveNesting, qerr.Kind)
	assert.Equal(t, qperrors.PhaseDecode, qerr.Phase)
	assert.Equal(t, 5, qerr.Depth)
}

func TestDecoder_TrailingBytesIgnored(t *testing.T) {
	v := decodeDefault(t, []byte{0x05, 0x06, 0x07})
	require.Equal(t, Int(5), v)
}

func TestDecoder_MapOrderPreserved(t *testing.T) {
	data := []byte{
		TagMap0 + 3,
		rawFirst + 2, 'z', 0x00, 0x01,
		rawFirst + 2, 'a', 0x00, 0x02,
		rawFirst + 2, 'm', 0x00, 0x03,
	}
	v := decodeDefault(t, data)
	m, ok := v.(*Map)
	require.True(t, ok)
	keys := make([]Value, 0, len(m.Pairs))
	for _, p := range m.Pairs {
		keys = append(keys, p.Key)
	}
	require.Equal(t, []Value{Str("z"), Str("a"), Str("m")}, keys)
}
