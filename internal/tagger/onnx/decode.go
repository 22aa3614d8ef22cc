package onnx

// argmax returns the index of the largest value in row.
func argmax(row []float32) int {
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return best
}

// decodeSegment picks a label for each word of segment b from the flat logits
// of the whole batch, using the logits at the word's first subword.
func decodeSegment(logits []float32, b int, seg segment, seqLen, numLabels int64) []int {
	ids := make([]int, len(seg.words))
	for i, pos := range seg.wordStart {
		off := (int64(b)*seqLen + int64(pos)) * numLabels
		ids[i] = argmax(logits[off : off+numLabels])
	}
	return ids
}
