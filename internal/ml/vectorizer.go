package ml

import (
	"math"
	"sort"
	"strings"

	"NewsVerifier/internal/textproc"
)

const defaultMaxDocFreq = 0.7

// Vectorizer maps normalized text to TF-IDF weighted sparse vectors over
// a vocabulary fixed at fit time. All fields are exported for gob
// serialization; a fitted Vectorizer is read-only and safe for
// concurrent Transform calls.
type Vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
	MaxDocFreq float64
}

// NewVectorizer returns an unfitted vectorizer with the default
// document-frequency ceiling.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxDocFreq: defaultMaxDocFreq}
}

// tokenize splits normalized text into feature terms: whitespace-delimited
// tokens of at least two characters, stop words excluded.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	terms := fields[:0]
	for _, f := range fields {
		if len(f) < 2 || textproc.IsStopWord(f) {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// Fit learns the vocabulary and IDF weights from the document set.
// Terms appearing in more than MaxDocFreq of the documents are excluded;
// near-universal terms carry no discriminative signal.
func (v *Vectorizer) Fit(docs []string) {
	if v.MaxDocFreq <= 0 {
		v.MaxDocFreq = defaultMaxDocFreq
	}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}

	n := len(docs)
	ceiling := v.MaxDocFreq * float64(n)

	terms := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if float64(df) > ceiling {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF: ln((1+n)/(1+df)) + 1.
		v.IDF[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}
}

// Dimensions returns the size of the fitted feature space.
func (v *Vectorizer) Dimensions() int {
	return len(v.IDF)
}

// Transform converts one normalized document into an L2-normalized TF-IDF
// vector. Terms outside the fitted vocabulary contribute nothing.
func (v *Vectorizer) Transform(doc string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range tokenize(doc) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, counts[idx]*v.IDF[idx])
	}

	return l2normalize(vec)
}

// TransformAll converts a batch of documents.
func (v *Vectorizer) TransformAll(docs []string) []SparseVector {
	vecs := make([]SparseVector, len(docs))
	for i, doc := range docs {
		vecs[i] = v.Transform(doc)
	}
	return vecs
}
