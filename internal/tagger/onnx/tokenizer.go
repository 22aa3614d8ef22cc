package onnx

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	defaultMaxSeqLen = 128
	maxWordRunes     = 200
	unkToken         = "[UNK]"
)

// segment is one model input sequence: [CLS] subwords... [SEP].
// wordStart[i] is the position in ids of the first subword of words[i].
type segment struct {
	ids       []int64
	wordStart []int
	words     []string
}

// packed holds flat [batchSize * seqLen] inputs padded to the longest segment.
type packed struct {
	inputIDs      []int64
	attentionMask []int64
	tokenTypeIDs  []int64
	batchSize     int64
	seqLen        int64
}

// tokenizer performs BERT-style basic tokenization followed by WordPiece,
// keeping track of which subwords belong to which original word.
type tokenizer struct {
	vocab     *vocab
	maxSeqLen int
	lowercase bool
}

func newTokenizer(vocabPath string, lowercase bool) (*tokenizer, error) {
	v, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return &tokenizer{vocab: v, maxSeqLen: defaultMaxSeqLen, lowercase: lowercase}, nil
}

// segments splits text into words and packs their subwords into as many
// segments as needed to respect maxSeqLen. No word is dropped; a single word
// longer than a segment keeps only its leading subwords.
func (t *tokenizer) segments(text string) []segment {
	budget := t.maxSeqLen - 2
	var segs []segment
	cur := segment{ids: []int64{t.vocab.clsID}}

	flush := func() {
		if len(cur.words) == 0 {
			return
		}
		cur.ids = append(cur.ids, t.vocab.sepID)
		segs = append(segs, cur)
		cur = segment{ids: []int64{t.vocab.clsID}}
	}

	for _, word := range splitWords(text) {
		pieces := t.wordpiece(t.normalize(word))
		if len(pieces) > budget {
			pieces = pieces[:budget]
		}
		if len(cur.ids)-1+len(pieces) > budget {
			flush()
		}
		cur.wordStart = append(cur.wordStart, len(cur.ids))
		cur.words = append(cur.words, word)
		for _, p := range pieces {
			cur.ids = append(cur.ids, t.vocab.lookup(p))
		}
	}
	flush()
	return segs
}

// pack pads segments to the longest one and flattens them for inference.
func (t *tokenizer) pack(segs []segment) packed {
	if len(segs) == 0 {
		return packed{}
	}
	var seqLen int64
	for _, s := range segs {
		if int64(len(s.ids)) > seqLen {
			seqLen = int64(len(s.ids))
		}
	}
	batchSize := int64(len(segs))
	total := batchSize * seqLen

	p := packed{
		inputIDs:      make([]int64, total),
		attentionMask: make([]int64, total),
		tokenTypeIDs:  make([]int64, total),
		batchSize:     batchSize,
		seqLen:        seqLen,
	}
	for i, s := range segs {
		off := int64(i) * seqLen
		for j, id := range s.ids {
			p.inputIDs[off+int64(j)] = id
			p.attentionMask[off+int64(j)] = 1
		}
		for j := int64(len(s.ids)); j < seqLen; j++ {
			p.inputIDs[off+j] = t.vocab.padID
		}
	}
	return p
}

// normalize prepares a word for vocabulary lookup. The original word text is
// kept separately for output.
func (t *tokenizer) normalize(word string) string {
	if !t.lowercase {
		return word
	}
	return stripAccents(strings.ToLower(word))
}

// wordpiece decomposes a word into subwords by greedy longest match.
// Words that cannot be decomposed become a single [UNK].
func (t *tokenizer) wordpiece(word string) []string {
	runes := []rune(word)
	if len(runes) == 0 || len(runes) > maxWordRunes {
		return []string{unkToken}
	}

	var pieces []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := false
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if t.vocab.contains(sub) {
				pieces = append(pieces, sub)
				found = true
				break
			}
			end--
		}
		if !found {
			return []string{unkToken}
		}
		start = end
	}
	return pieces
}

// splitWords applies BERT's basic tokenization without case folding: drop
// control characters, isolate CJK ideographs, split on whitespace, then split
// punctuation into separate words.
func splitWords(text string) []string {
	text = tokenizeChineseChars(cleanText(text))
	var words []string
	for _, field := range strings.Fields(text) {
		words = append(words, splitOnPunctuation(field)...)
	}
	return words
}

func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == 0 || r == 0xFFFD || isControl(r) {
			continue
		}
		if isWhitespace(r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripAccents removes combining marks after NFD normalization.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func tokenizeChineseChars(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, r := range text {
		if isChineseChar(r) {
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitOnPunctuation(word string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range word {
		if isPunctuation(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		} else {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

// isPunctuation treats the ASCII symbol ranges as punctuation in addition to
// the Unicode punctuation categories, as BERT does.
func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isChineseChar(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
