package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/payloadbuf/errs"
	"github.com/arloliu/payloadbuf/pack"
)

func TestResolve_NestedBufferTranslatesOffsets(t *testing.T) {
	inner, err := New(0)
	require.NoError(t, err)
	require.NoError(t, inner.Add(0, Raw{Value: "as"}, WithName("a"), WithTags("inner")))
	require.NoError(t, inner.Add(4, Raw{Value: "df"}, WithName("b")))

	outer, err := New(0)
	require.NoError(t, err)
	require.NoError(t, outer.Add(12, inner))

	frags := outer.Fragments()
	require.Len(t, frags, 2)
	require.Equal(t, 12, frags[0].Offset())
	require.Equal(t, "a", frags[0].Name())
	require.Equal(t, []string{"inner"}, frags[0].Tags())
	require.Equal(t, 16, frags[1].Offset())
	require.Equal(t, "df", string(frags[1].Data()))
}

func TestResolve_AppendNestedBufferAtOccupiedEnd(t *testing.T) {
	inner, err := New(0)
	require.NoError(t, err)
	require.NoError(t, inner.Add(0, Raw{Value: "AAAA"}))
	require.NoError(t, inner.Add(4, Raw{Value: "BBBB"}))

	outer, err := New(0)
	require.NoError(t, err)
	require.NoError(t, outer.Add(0, Raw{Value: "0123456789"}))

	end := outer.OccupiedEnd()
	require.NoError(t, outer.Append(inner))

	frags := outer.Fragments()
	require.Equal(t, end, frags[1].Offset())
	require.Equal(t, end+4, frags[2].Offset())
}

func TestResolve_NestedBufferLengthDoesNotCarryOver(t *testing.T) {
	// The nested buffer's declared length bounds its own fragments only;
	// merging translates offsets, not the declared length.
	inner, err := New(64)
	require.NoError(t, err)
	require.NoError(t, inner.Add(0, Raw{Value: "AA"}))

	outer, err := New(8)
	require.NoError(t, err)
	require.NoError(t, outer.Add(4, inner))
	require.Equal(t, 6, outer.OccupiedEnd())
	require.Equal(t, 8, outer.Len())
}

func TestResolve_OffsetMap(t *testing.T) {
	pb, err := New(0, WithContext(pack.I386))
	require.NoError(t, err)

	err = pb.Add(32, OffsetMap{
		0: {Value: "1234"},
		4: {Value: uint32(0x35363738), Name: "filler2", Tags: []string{"chain C"}},
		8: {Value: "9abc", Name: "saved retaddr", Tags: []string{"chain C", "retaddr"}},
	})
	require.NoError(t, err)

	frags := pb.Fragments()
	require.Len(t, frags, 3)

	// Entries resolve in ascending key order.
	require.Equal(t, 32, frags[0].Offset())
	require.Equal(t, "1234", string(frags[0].Data()))
	require.Equal(t, []string{DefaultTag}, frags[0].Tags())

	require.Equal(t, 36, frags[1].Offset())
	require.Equal(t, "8765", string(frags[1].Data()), "uint32 packs little-endian")
	require.Equal(t, "filler2", frags[1].Name())

	require.Equal(t, 40, frags[2].Offset())
	require.Equal(t, []string{"chain C", "retaddr"}, frags[2].Tags())
}

func TestResolve_OffsetMapNestedBufferValue(t *testing.T) {
	chain, err := New(0)
	require.NoError(t, err)
	require.NoError(t, chain.Add(0, Raw{Value: "XY"}, WithTags("chain")))

	pb, err := New(0)
	require.NoError(t, err)
	require.NoError(t, pb.Add(8, OffsetMap{4: {Value: chain}}))

	frags := pb.Fragments()
	require.Len(t, frags, 1)
	require.Equal(t, 12, frags[0].Offset())
	require.Equal(t, []string{"chain"}, frags[0].Tags())
}

func TestResolve_SeqUsesAbsoluteOffsets(t *testing.T) {
	pb, err := New(0)
	require.NoError(t, err)

	// Item offsets are absolute: the anchor offset of the Add call does not
	// shift them.
	err = pb.Add(100, Seq{
		{Offset: 0, Value: "as"},
		{Offset: 2, Value: "df", Name: "second", Tags: []string{"seq"}},
	})
	require.NoError(t, err)

	frags := pb.Fragments()
	require.Equal(t, 0, frags[0].Offset())
	require.Equal(t, 2, frags[1].Offset())
	require.Equal(t, "second", frags[1].Name())
}

func TestResolve_EmptyComposites(t *testing.T) {
	pb, err := New(0)
	require.NoError(t, err)

	require.NoError(t, pb.Add(0, OffsetMap{}))
	require.NoError(t, pb.Add(0, Seq{}))
	require.Empty(t, pb.Fragments())
}

func TestResolve_CompositeTagValidation(t *testing.T) {
	pb, err := New(0)
	require.NoError(t, err)

	err = pb.Add(0, OffsetMap{0: {Value: "x", Tags: []string{""}}})
	require.ErrorIs(t, err, errs.ErrInvalidTags)

	err = pb.Add(0, Seq{{Offset: 0, Value: "x", Tags: []string{""}}})
	require.ErrorIs(t, err, errs.ErrInvalidTags)
}

func TestResolve_CompositePackError(t *testing.T) {
	pb, err := New(0)
	require.NoError(t, err)

	err = pb.Add(0, OffsetMap{0: {Value: struct{}{}}})
	require.ErrorIs(t, err, errs.ErrPack)
	require.Empty(t, pb.Fragments())
}

func TestResolve_CustomPackerErrorsAreWrapped(t *testing.T) {
	pb, err := New(0, WithPacker(func(any) ([]byte, error) {
		return nil, errs.ErrPatternTooLong // arbitrary non-ErrPack failure
	}))
	require.NoError(t, err)

	err = pb.Add(0, Raw{Value: "x"})
	require.ErrorIs(t, err, errs.ErrPack)
}
