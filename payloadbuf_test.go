package payloadbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/payloadbuf/pack"
	"github.com/arloliu/payloadbuf/report"
)

// Walks the whole surface the way an exploit script does: place fragments,
// compose a nested chain, inspect the layout, materialize.
func TestComposeChainedPayload(t *testing.T) {
	pb, err := New(48)
	require.NoError(t, err)

	require.NoError(t, pb.Add(16, Raw{Value: "ABCD"}, WithName("ret address")))
	require.Equal(t, 20, pb.OccupiedEnd())

	require.Contains(t, report.Fragments(pb, false), "10-14 ( 4): 41424344 ret address")

	data, err := pb.Materialize()
	require.NoError(t, err)
	require.Equal(t, "aaaabaaacaaadaaaABCDfaaagaaahaaaiaaajaaakaaalaaa", string(data))

	require.NoError(t, pb.Add(28, Raw{Value: "EFGH"}, WithName("pivot"), WithTags("chain A")))
	require.Equal(t, " 0-10 (10)\n14-1c ( 8)", report.Regions(pb, false))

	another, err := New(0, WithContext(pack.I386))
	require.NoError(t, err)
	require.NoError(t, another.Add(0, Seq{
		{Offset: 0, Value: "as"},
		{Offset: 2, Value: "df"},
	}))
	require.NoError(t, another.Append(OffsetMap{
		0: {Value: "1234"},
		4: {Value: uint32(0x35363738), Name: "filler2", Tags: []string{"chain C"}},
		8: {Value: "9abc", Name: "saved retaddr", Tags: []string{"chain C", "retaddr"}},
	}))

	require.NoError(t, pb.Append(another))

	data, err = pb.Materialize()
	require.NoError(t, err)
	require.Equal(t, "1234", string(data[36:40]))
	require.Equal(t, "8765", string(data[40:44]))
}

func TestCyclicHelpers(t *testing.T) {
	data, err := Cyclic(16)
	require.NoError(t, err)
	require.Equal(t, "aaaabaaacaaadaaa", string(data))

	require.Equal(t, 8, CyclicFind([]byte("caaa")))
	require.Equal(t, 8, CyclicFindValue(0x61616163, pack.I386))
}
