package carrier

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bytebaker/stego/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvisible_SampleSizes(t *testing.T) {
	c := newCarrier(t, InvisibleCodepoint)

	stego, err := c.Encode(sampleHost, []byte(sampleSecret), "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stego, sampleHost))
	assert.Equal(t, 112, utf8.RuneCountInString(stego)-utf8.RuneCountInString(sampleHost))

	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, sampleSecret, string(got))

	stego, err = c.Encode(sampleHost, []byte(sampleSecret+"?"), "")
	require.NoError(t, err)
	assert.Equal(t, 116, utf8.RuneCountInString(stego)-utf8.RuneCountInString(sampleHost))
}

func TestInvisible_MostRecentPayloadWins(t *testing.T) {
	c := newCarrier(t, InvisibleCodepoint)
	once, err := c.Encode("cover", []byte("first"), "")
	require.NoError(t, err)
	twice, err := c.Encode(once, []byte("second payload"), "")
	require.NoError(t, err)

	got, err := c.Decode(twice, "")
	require.NoError(t, err)
	assert.Equal(t, "second payload", string(got))
}

func TestInvisible_TrailingWhitespaceTolerated(t *testing.T) {
	c := newCarrier(t, InvisibleCodepoint)
	stego, err := c.Encode("cover text", []byte("hi"), "")
	require.NoError(t, err)

	got, err := c.Decode(stego+"\n", "")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestInvisible_TruncatedRun(t *testing.T) {
	c := newCarrier(t, InvisibleCodepoint)
	stego, err := c.Encode("cover", []byte("hello"), "")
	require.NoError(t, err)

	// Every symbol is three bytes; drop the last four symbols (one byte).
	_, err = c.Decode(stego[:len(stego)-12], "")
	assert.ErrorIs(t, err, frame.ErrTruncated)
}

func TestInvisible_SymbolsBeforeOtherTextIgnored(t *testing.T) {
	c := newCarrier(t, InvisibleCodepoint)
	stego, err := c.Encode("cover", []byte("hidden"), "")
	require.NoError(t, err)

	got, err := c.Decode(stego+" and more words", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncrypted_WrongKeyDiverges(t *testing.T) {
	c := newCarrier(t, EncryptedCodepoint)
	stego, err := c.Encode(sampleHost, []byte(sampleSecret), "right")
	require.NoError(t, err)

	got, err := c.Decode(stego, "wrong")
	require.NoError(t, err)
	assert.Len(t, got, len(sampleSecret))
	assert.NotEqual(t, sampleSecret, string(got))
}

func TestEncrypted_KeylessRoundTrip(t *testing.T) {
	c := newCarrier(t, EncryptedCodepoint)
	stego, err := c.Encode(sampleHost, []byte(sampleSecret), "")
	require.NoError(t, err)

	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, sampleSecret, string(got))
}

func TestEncrypted_KeylessDecodeOfKeyedPayload(t *testing.T) {
	c := newCarrier(t, EncryptedCodepoint)
	stego, err := c.Encode(sampleHost, []byte(sampleSecret), "right")
	require.NoError(t, err)

	_, err = c.Decode(stego, "")
	assert.ErrorIs(t, err, ErrLikelyWrongKey)
}

func TestEncrypted_KeylessAcrossHourChange(t *testing.T) {
	enc := newCarrier(t, EncryptedCodepoint)
	stego, err := enc.Encode(sampleHost, []byte(sampleSecret), "")
	require.NoError(t, err)

	later, err := New(EncryptedCodepoint, WithClock(func() time.Time { return fixedNow.Add(2 * time.Hour) }))
	require.NoError(t, err)
	_, err = later.Decode(stego, "")
	assert.ErrorIs(t, err, ErrLikelyWrongKey)
}

func TestEncrypted_LengthPrefixInClear(t *testing.T) {
	c := newCarrier(t, EncryptedCodepoint)
	stego, err := c.Encode(sampleHost, []byte(sampleSecret), "k")
	require.NoError(t, err)

	bits, err := c.Extract(stego)
	require.NoError(t, err)
	n, _, err := frame.SplitHeader(bits[:frame.HeaderBits].Bytes())
	require.NoError(t, err)
	assert.Equal(t, len(sampleSecret), n)
}

func TestEncrypted_HostsWithZeroWidthCharacters(t *testing.T) {
	withInvisible, err := Encode(InvisibleCodepoint, "already carrying", []byte("older"), "")
	require.NoError(t, err)
	hosts := map[string]string{
		"emoji joiners": "family \U0001F468\u200d\U0001F469\u200d\U0001F467 photo",
		"zwnj word":     "\u0645\u06cc\u200c\u062e\u0648\u0627\u0647\u0645 text",
		"trailing zwj":  "thumbs \U0001F44D\u200d",
		"4spach host":   withInvisible,
	}
	c := newCarrier(t, EncryptedCodepoint)
	for name, host := range hosts {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"pw", ""} {
				stego, err := c.Encode(host, []byte(sampleSecret), key)
				require.NoError(t, err)
				got, err := c.Decode(stego, key)
				require.NoError(t, err, "key %q", key)
				assert.Equal(t, sampleSecret, string(got), "key %q", key)
			}
		})
	}
}

func TestEncrypted_MostRecentPayloadWins(t *testing.T) {
	c := newCarrier(t, EncryptedCodepoint)
	once, err := c.Encode("cover", []byte("first"), "pw")
	require.NoError(t, err)
	twice, err := c.Encode(once, []byte("second payload"), "pw")
	require.NoError(t, err)

	got, err := c.Decode(twice, "pw")
	require.NoError(t, err)
	assert.Equal(t, "second payload", string(got))
}

func TestEmoticon_RejectsHostsWithSymbols(t *testing.T) {
	c := newCarrier(t, Emoticon)
	for _, host := range []string{"see http://x.io ok", "a -- b", "nice :)", "call f() now"} {
		_, err := c.Encode(host, []byte("hi"), "")
		assert.ErrorIs(t, err, ErrHostHasSymbols, "host %q", host)
	}
	stego, err := c.Encode("quotes \"\" and ** are fine", []byte("hi"), "")
	require.NoError(t, err)
	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestStripPayloads(t *testing.T) {
	host := "family \U0001F468\u200d\U0001F469\u200d\U0001F467 photo"
	got, n := StripPayloads(host + "\n")
	assert.Equal(t, host+"\n", got)
	assert.Zero(t, n)

	for _, id := range []ID{InvisibleCodepoint, EncryptedCodepoint} {
		stego, err := Encode(id, host, []byte("hi"), "pw")
		require.NoError(t, err)
		got, n := StripPayloads(stego + "\n")
		assert.Equal(t, host+"\n", got, id.String())
		assert.Equal(t, SymbolCount(id, 2), n, id.String())
	}

	stego, err := Encode(InvisibleCodepoint, "cover", []byte("hello"), "")
	require.NoError(t, err)
	truncated := stego[:len(stego)-12]
	got, n = StripPayloads(truncated)
	assert.Equal(t, truncated, got, "incomplete frames stay")
	assert.Zero(t, n)
}

func TestMarkup_ExactOutput(t *testing.T) {
	c := newCarrier(t, FormattingMarkup)
	stego, err := c.Encode("one two three", []byte("A"), "")
	require.NoError(t, err)
	assert.Equal(t,
		"*one* *two* *three* *one* *two* *three* *one* **two** **three** *one* *two* **three**",
		stego)

	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

func TestMarkup_MarkerHeavyHost(t *testing.T) {
	c := newCarrier(t, FormattingMarkup)
	host := "*bold* __init__ *** plain"
	stego, err := c.Encode(host, []byte("ok"), "")
	require.NoError(t, err)
	assert.Contains(t, stego, " *** ")

	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestMarkup_EdgeMarkersReplaced(t *testing.T) {
	c := newCarrier(t, FormattingMarkup)
	stego, err := c.Encode("_init_ snake_case", []byte("A"), "")
	require.NoError(t, err)

	fields := strings.Fields(stego)
	assert.Equal(t, "*init*", fields[0])
	assert.Equal(t, "*snake_case*", fields[1])
	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

func TestMarkup_NoUsableWords(t *testing.T) {
	c := newCarrier(t, FormattingMarkup)
	for _, host := range []string{"", "   ", "*** __"} {
		_, err := c.Encode(host, []byte("x"), "")
		assert.ErrorIs(t, err, ErrNoHostWords, "host %q", host)
	}
}

func TestMarkup_KeepsWordsBeyondPayload(t *testing.T) {
	c := newCarrier(t, FormattingMarkup)
	words := strings.Fields(strings.Repeat("word ", 20))
	stego, err := c.Encode(strings.Join(words, " "), []byte("A"), "")
	require.NoError(t, err)

	fields := strings.Fields(stego)
	require.Len(t, fields, 20)
	assert.Equal(t, "*word*", fields[0])
	assert.Equal(t, "word", fields[19])
}

func TestEmoticon_ExactOutput(t *testing.T) {
	c := newCarrier(t, Emoticon)
	stego, err := c.Encode("Hello World", []byte("A"), "")
	require.NoError(t, err)
	assert.Equal(t, "Hello :) World :) :) :( :| :(", stego)
	assert.Equal(t, SymbolCount(Emoticon, 1), len(strings.Fields(stego))-2)

	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

func TestEmoticon_EmptyHost(t *testing.T) {
	c := newCarrier(t, Emoticon)
	stego, err := c.Encode("", []byte("A"), "")
	require.NoError(t, err)
	assert.Equal(t, ":) :) :) :( :| :(", stego)

	got, err := c.Decode(stego, "")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

func TestEmoticon_SilentTokensCarryNothing(t *testing.T) {
	c := newCarrier(t, Emoticon)
	stego, err := c.Encode("a b", []byte("A"), "")
	require.NoError(t, err)

	noisy := strings.ReplaceAll(stego, " b ", ` b @@ ~~ "" `)
	got, err := c.Decode(noisy, "")
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

func TestInspect(t *testing.T) {
	stego, err := Encode(Emoticon, sampleHost, []byte("hi"), "")
	require.NoError(t, err)

	probes := Inspect(stego)
	require.Len(t, probes, len(All()))
	for _, p := range probes {
		if p.Carrier == Emoticon {
			assert.True(t, p.Complete)
			assert.Equal(t, 2, p.Declared)
			assert.Equal(t, frame.BitLen(2), p.Bits)
			continue
		}
		assert.False(t, p.Found(), p.Carrier.String())
		assert.Equal(t, -1, p.Declared)
	}
}

func TestInspect_PartialFrame(t *testing.T) {
	stego, err := Encode(InvisibleCodepoint, "cover", []byte("hello"), "")
	require.NoError(t, err)

	for _, p := range Inspect(stego[:len(stego)-12]) {
		if p.Carrier != InvisibleCodepoint {
			continue
		}
		assert.True(t, p.Found())
		assert.Equal(t, 5, p.Declared)
		assert.False(t, p.Complete)
	}
}

func TestAlphabets_AreBijective(t *testing.T) {
	for name, a := range map[string]*alphabet{
		"invisible": invisibleAlphabet,
		"encrypted": encryptedAlphabet,
		"markup":    markupAlphabet,
		"emoticon":  emoticonAlphabet,
	} {
		t.Run(name, func(t *testing.T) {
			require.Len(t, a.symbols, 1<<a.width)
			for i := range a.symbols {
				v, ok := a.value(a.symbol(uint8(i)))
				require.True(t, ok)
				assert.Equal(t, uint8(i), v)
			}
		})
	}
	for _, tok := range []string{"@@", "~~", `""`} {
		_, ok := emoticonAlphabet.value(tok)
		assert.False(t, ok, tok)
	}
	assert.Nil(t, markupAlphabet.runes)
	assert.Len(t, invisibleAlphabet.runes, 4)
	assert.Len(t, encryptedAlphabet.runes, 8)
}

func TestNewAlphabet_RejectsBadTables(t *testing.T) {
	assert.Panics(t, func() { newAlphabet(2, []string{"a", "b", "c"}) })
	assert.Panics(t, func() { newAlphabet(1, []string{"a", "a"}) })
}
