package ml

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// ModelPair is the unit of deployment: a fitted vectorizer and the
// classifier trained on its feature space. Both halves must come from
// the same training run; feature dimensions are not compatible across
// fits. A loaded pair is read-only and safe to share across concurrent
// prediction requests.
type ModelPair struct {
	Vectorizer *Vectorizer
	Classifier *PassiveAggressive
}

// SavePair persists both artifacts. Each file is written to a temp file
// in the destination directory and renamed into place, so a crash never
// leaves a partially written artifact behind.
func SavePair(pair *ModelPair, vectorizerPath, classifierPath string) error {
	if pair == nil || pair.Vectorizer == nil || pair.Classifier == nil {
		return fmt.Errorf("save pair: incomplete model pair")
	}

	if err := writeGob(vectorizerPath, pair.Vectorizer); err != nil {
		return fmt.Errorf("save vectorizer: %w", err)
	}
	if err := writeGob(classifierPath, pair.Classifier); err != nil {
		return fmt.Errorf("save classifier: %w", err)
	}
	return nil
}

// LoadPair reads both artifacts from disk.
func LoadPair(vectorizerPath, classifierPath string) (*ModelPair, error) {
	var vec Vectorizer
	if err := readGob(vectorizerPath, &vec); err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}

	var clf PassiveAggressive
	if err := readGob(classifierPath, &clf); err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}

	if len(clf.Weights) != vec.Dimensions() {
		return nil, fmt.Errorf("artifact mismatch: classifier has %d weights, vectorizer has %d terms",
			len(clf.Weights), vec.Dimensions())
	}

	return &ModelPair{Vectorizer: &vec, Classifier: &clf}, nil
}

func writeGob(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
