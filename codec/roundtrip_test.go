package codec

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundtrip(t *testing.T, v Value) Value {
	t.Helper()
	data, err := NewEncoder(nil).Encode(v)
	require.NoError(t, err)
	out, err := NewDecoder(nil).Decode(data)
	require.NoError(t, err)
	return out
}

func TestRoundtrip_Ints(t *testing.T) {
	values := []int64{
		0, 1, -1, 5, 63, 64, -60, -61,
		127, -128, 128, -129,
		32767, -32768, 32768, -32769,
		math.MaxInt32, math.MinInt32,
		int64(math.MaxInt32) + 1, int64(math.MinInt32) - 1,
		math.MaxInt64, math.MinInt64,
	}
	for _, n := range values {
		require.Equal(t, Int(n), roundtrip(t, Int(n)), "value %d", n)
	}
}

func TestRoundtrip_Doubles(t *testing.T) {
	values := []float64{
		0, 1, -1, 0.5, -0.5, 3.141592653589793,
		math.MaxFloat64, math.SmallestNonzeroFloat64,
		math.Inf(1), math.Inf(-1),
	}
	for _, f := range values {
		require.Equal(t, Double(f), roundtrip(t, Double(f)), "value %g", f)
	}

	// NaN never compares equal; check the round-tripped value is NaN.
	out := roundtrip(t, Double(math.NaN()))
	d, ok := out.(Double)
	require.True(t, ok)
	require.True(t, math.IsNaN(float64(d)))
}

func TestRoundtrip_Strings(t *testing.T) {
	values := []string{
		"",
		"ab",
		"with\x00embedded\x00zeros",
		strings.Repeat("x", 98),
		strings.Repeat("x", 99),
		strings.Repeat("y", 200),
		strings.Repeat("z", 70000),
	}
	for _, s := range values {
		require.Equal(t, Str(s), roundtrip(t, Str(s)), "length %d", len(s))
	}
}

func TestRoundtrip_BoolsAndNull(t *testing.T) {
	require.Equal(t, Bool(true), roundtrip(t, Bool(true)))
	require.Equal(t, Bool(false), roundtrip(t, Bool(false)))
	require.Equal(t, Null, roundtrip(t, Null))
}

func TestRoundtrip_Lists(t *testing.T) {
	lists := []List{
		{},
		{Int(1)},
		{Int(1), Str("two"), Double(3.5), Bool(true), Null},
		{Int(1), Int(2), Int(3), Int(4), Int(5), Int(6), Int(7)},
	}
	for _, l := range lists {
		out := roundtrip(t, l)
		got, ok := out.(List)
		require.True(t, ok)
		require.Len(t, got, len(l))
		require.Equal(t, l, got, "element order preserved")
	}
}

func TestRoundtrip_Maps(t *testing.T) {
	maps := []*Map{
		NewMap(Entry{Key: Str("k"), Value: Str("v")}),
		NewMap(
			Entry{Key: Str("name"), Value: Str("siri")},
			Entry{Key: Int(-7), Value: Double(2.5)},
			Entry{Key: Str("flags"), Value: List{Bool(true), Null}},
		),
	}
	for _, m := range maps {
		out := roundtrip(t, m)
		got, ok := out.(*Map)
		require.True(t, ok)
		require.Equal(t, m.Pairs, got.Pairs)
	}
}

func TestRoundtrip_LargeMap(t *testing.T) {
	m := &Map{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		m.Set(Str(k), Str(strings.ToUpper(k)))
	}
	out := roundtrip(t, m)
	got, ok := out.(*Map)
	require.True(t, ok)
	require.Equal(t, m.Pairs, got.Pairs)
}

func TestRoundtrip_DeepNesting(t *testing.T) {
	v := Value(Str("leaf"))
	for i := 0; i < 100; i++ {
		v = List{v, Int(int64(i))}
	}
	require.Equal(t, v, roundtrip(t, v))
}

func TestRoundtrip_MixedDocument(t *testing.T) {
	doc := NewMap(
		Entry{Key: Str("series"), Value: Str("cpu.load")},
		Entry{Key: Str("points"), Value: List{
			List{Int(1471254705), Double(0.5)},
			List{Int(1471254710), Double(1.0)},
			List{Int(1471254715), Double(-1.0)},
		}},
		Entry{Key: Str("meta"), Value: NewMap(
			Entry{Key: Str("unit"), Value: Str("load")},
			Entry{Key: Str("count"), Value: Int(3)},
		)},
	)
	out := roundtrip(t, doc)
	require.Equal(t, doc, out)
}

func TestScanTags(t *testing.T) {
	data, err := NewEncoder(nil).Encode(List{Int(1), Str("ab"), Double(2.5)})
	require.NoError(t, err)

	infos, err := ScanTags(data)
	require.NoError(t, err)
	require.Len(t, infos, 4)
	require.Equal(t, "ARRAY3", infos[0].Name)
	require.Equal(t, "INT(1)", infos[1].Name)
	require.Equal(t, "RAW(3)", infos[2].Name)
	require.Equal(t, "DOUBLE", infos[3].Name)
	require.Equal(t, 0, infos[0].Offset)

	_, err = ScanTags([]byte{TagHook})
	require.Error(t, err)
}

func TestTagName(t *testing.T) {
	cases := map[byte]string{
		0x00:          "INT(0)",
		0x3f:          "INT(63)",
		0x40:          "INT(-1)",
		0x7b:          "INT(-60)",
		TagHook:       "HOOK",
		rawFirst:      "RAW(0)",
		rawLast:       "RAW(99)",
		TagArray0:     "ARRAY0",
		TagArray5:     "ARRAY5",
		TagMap0:       "MAP0",
		TagMap5:       "MAP5",
		TagTrue:       "TRUE",
		TagNull:       "NULL",
		TagArrayOpen:  "ARRAY_OPEN",
		TagMapClose:   "MAP_CLOSE",
		TagInt32:      "INT32",
		TagRaw16:      "RAW16",
		TagDouble:     "DOUBLE",
		TagDouble0:    "DOUBLE(0)",
	}
	for tag, want := range cases {
		require.Equal(t, want, TagName(tag), "tag 0x%02x", tag)
	}
}
