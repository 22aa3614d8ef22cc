// Package glossa tags text with part-of-speech labels and explains tag codes
// in plain English.
//
// Explaining a code needs no model:
//
//	desc, err := glossa.Explain("VBD") // "verb, past tense"
//
// Tagging loads a pre-trained token-classification model through ONNX
// Runtime, or calls a remote tagging service:
//
//	g, err := glossa.New(glossa.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Close()
//
//	ann, _ := g.Annotate(ctx, "The cat sat.")
//	for _, tok := range ann.Tokens {
//	    fmt.Println(tok.Text, tok.Tag, tok.TagDescription)
//	}
//
// Unknown codes are not errors: they explain to NoDescription. Lookups are
// case-sensitive, so "dt" is unknown while "DT" is "determiner".
//
// A Glossa instance is safe for concurrent use. Create once, reuse.
package glossa
