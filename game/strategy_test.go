package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestParseStrategy(t *testing.T) {
	is := is.New(t)
	for _, st := range Strategies {
		parsed, err := ParseStrategy(st.String())
		is.NoErr(err)
		is.Equal(parsed, st)
	}
	st, err := ParseStrategy(" NoConsequence ")
	is.NoErr(err)
	is.Equal(st, NoConsequence)

	_, err = ParseStrategy("clever")
	is.True(errors.Is(err, ErrUnknownStrategy))
}

func TestChoose(t *testing.T) {
	full := Playable{
		NoConsequence: mustParse("6♥", "7♠"),
		Sequence:      mustParse("6♥", "9♥", "7♠"),
		Any:           mustParse("6♥", "9♥", "4♣", "8♣", "7♠"),
	}
	seqOnly := Playable{
		Sequence: mustParse("9♥", "4♣"),
		Any:      mustParse("9♥", "4♣", "8♣"),
	}
	anyOnly := Playable{Any: mustParse("4♣", "8♣")}

	type choiceTest struct {
		name   string
		st     Strategy
		p      Playable
		want   string
		single [PrefBuckets]uint64
		multi  [PrefBuckets]uint64
		missed uint64
	}
	testCases := []choiceTest{
		{"nocons-first", NoConsequence, full, "6♥", [3]uint64{}, [3]uint64{1, 0, 0}, 0},
		{"nocons-seq", NoConsequence, seqOnly, "9♥ 4♣", [3]uint64{}, [3]uint64{0, 1, 0}, 0},
		{"nocons-any", NoConsequence, anyOnly, "4♣ 8♣", [3]uint64{}, [3]uint64{0, 0, 1}, 0},
		{"nocons-none", NoConsequence, Playable{}, "", [3]uint64{}, [3]uint64{}, 1},
		{"preferred-first", Preferred, full, "6♥ 9♥ 7♠", [3]uint64{}, [3]uint64{1, 0, 0}, 0},
		{"preferred-seq", Preferred, seqOnly, "9♥ 4♣", [3]uint64{}, [3]uint64{0, 1, 0}, 0},
		{"dumb", Dumb, full, "6♥ 9♥ 4♣ 8♣ 7♠", [3]uint64{}, [3]uint64{1, 0, 0}, 0},
		{"dumb-single", Dumb, Playable{Any: mustParse("K♦")}, "K♦", [3]uint64{1, 0, 0}, [3]uint64{}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := NewResults(2)
			got := tc.st.Choose(tc.p, 1, res)
			assert.Equal(t, tc.want, got.String())
			pr := res.Player(1)
			assert.Equal(t, tc.single, pr.Single)
			assert.Equal(t, tc.multi, pr.Multi)
			assert.Equal(t, tc.missed, pr.Misses)
			assert.Equal(t, PlayerResults{}, res.Player(0))
		})
	}
}

func TestChooseWithoutResults(t *testing.T) {
	is := is.New(t)
	got := NoConsequence.Choose(Playable{Any: mustParse("4♣")}, 0, nil)
	is.Equal(got, mustParse("4♣"))
}

func TestPrefRankDesc(t *testing.T) {
	is := is.New(t)
	is.Equal(NoConsequence.MaxPrefRank(), 2)
	is.Equal(Dumb.MaxPrefRank(), 0)
	is.Equal(NoConsequence.PrefRankDesc(0), "No Cons")
	is.Equal(Preferred.PrefRankDesc(0), "No Cons+Seq")
	is.Equal(Preferred.PrefRankDesc(1), "Sequence")
	is.Equal(NoConsequence.PrefRankDesc(2), "Playable")
	is.Equal(Dumb.PrefRankDesc(0), "Playable")
	is.Equal(Dumb.PrefRankDesc(1), "Unknown")
}
