package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ml"
	"NewsVerifier/internal/textproc"
)

const (
	splitSeed    = 42
	holdoutShare = 0.2
	textColumn   = "text"
	labelColumn  = "label"
)

var (
	// ErrPrimaryDatasetMissing aborts training: no model can be produced
	// without the primary corpus file.
	ErrPrimaryDatasetMissing = errors.New("primary training dataset missing")

	// ErrNoTrainingData aborts training: every source was skipped or
	// empty after cleanup.
	ErrNoTrainingData = errors.New("no training data after cleanup")
)

// DatasetSource describes one CSV input to a training run.
type DatasetSource struct {
	Path string
	// LabelOverride, when set, replaces the label of every row in the
	// file (used for files known to be entirely fake or entirely real).
	LabelOverride *int
	// Primary marks the dataset whose absence is fatal.
	Primary bool
}

// Result reports the outcome of a training run. Accuracy is a
// diagnostic estimate from the held-out fit; the deployed Pair is refit
// on the full corpus and is not the model the accuracy was measured on.
type Result struct {
	Pair       *ml.ModelPair
	Accuracy   float64
	TotalRows  int
	TrainRows  int
	TestRows   int
	Dropped    int
	Vocabulary int
}

// Trainer assembles a corpus from CSV sources and fits a model pair.
type Trainer struct {
	logger *slog.Logger
}

// NewTrainer wires a logger; a nil logger disables log output.
func NewTrainer(logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Trainer{logger: logger}
}

// Train runs the full procedure: load sources in order, clean and
// normalize, report held-out accuracy from an 80/20 fit, then refit on
// 100% of the corpus for deployment.
func (t *Trainer) Train(sources []DatasetSource) (*Result, error) {
	corpus, dropped, err := t.assembleCorpus(sources)
	if err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, ErrNoTrainingData
	}

	texts := make([]string, len(corpus))
	labels := make([]int, len(corpus))
	for i, ex := range corpus {
		texts[i] = ex.Text
		labels[i] = ex.Label
	}

	trainIdx, testIdx := splitIndices(len(corpus), holdoutShare, splitSeed)
	trainTexts, trainLabels := subset(texts, labels, trainIdx)
	testTexts, testLabels := subset(texts, labels, testIdx)

	t.logger.Info("training diagnostic model",
		"train_rows", len(trainTexts), "test_rows", len(testTexts))

	// Held-out fit: exists only to estimate generalization, never deployed.
	holdoutVec := ml.NewVectorizer()
	holdoutVec.Fit(trainTexts)
	holdoutClf := ml.NewPassiveAggressive()
	holdoutClf.Fit(holdoutVec.TransformAll(trainTexts), trainLabels, holdoutVec.Dimensions())
	accuracy := holdoutClf.Accuracy(holdoutVec.TransformAll(testTexts), testLabels)

	t.logger.Info("held-out accuracy", "accuracy", fmt.Sprintf("%.4f", accuracy))

	// Deployed fit: fresh vectorizer and classifier over the full corpus.
	vec := ml.NewVectorizer()
	vec.Fit(texts)
	clf := ml.NewPassiveAggressive()
	clf.Fit(vec.TransformAll(texts), labels, vec.Dimensions())

	return &Result{
		Pair:       &ml.ModelPair{Vectorizer: vec, Classifier: clf},
		Accuracy:   accuracy,
		TotalRows:  len(corpus),
		TrainRows:  len(trainTexts),
		TestRows:   len(testTexts),
		Dropped:    dropped,
		Vocabulary: vec.Dimensions(),
	}, nil
}

// TrainAndSave runs Train and persists the deployed pair atomically.
func (t *Trainer) TrainAndSave(sources []DatasetSource, vectorizerPath, classifierPath string) (*Result, error) {
	result, err := t.Train(sources)
	if err != nil {
		return nil, err
	}
	if err := ml.SavePair(result.Pair, vectorizerPath, classifierPath); err != nil {
		return nil, fmt.Errorf("persist model pair: %w", err)
	}
	return result, nil
}

func (t *Trainer) assembleCorpus(sources []DatasetSource) ([]domain.LabeledExample, int, error) {
	var corpus []domain.LabeledExample
	dropped := 0

	for _, src := range sources {
		if _, err := os.Stat(src.Path); err != nil {
			if src.Primary {
				return nil, 0, fmt.Errorf("%w: %s", ErrPrimaryDatasetMissing, src.Path)
			}
			t.logger.Warn("skipping dataset: file not found", "path", src.Path)
			continue
		}

		rows, skipped, err := t.loadRows(src)
		if err != nil {
			t.logger.Warn("skipping dataset", "path", src.Path, "error", err)
			continue
		}

		t.logger.Info("loaded dataset", "path", src.Path, "rows", len(rows))
		corpus = append(corpus, rows...)
		dropped += skipped
	}

	return corpus, dropped, nil
}

// loadRows reads one CSV source, applying label override, column checks,
// row-level cleanup, and normalization. Malformed rows are skipped.
func (t *Trainer) loadRows(src DatasetSource) ([]domain.LabeledExample, int, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	textIdx, labelIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case textColumn:
			textIdx = i
		case labelColumn:
			labelIdx = i
		}
	}

	if textIdx < 0 {
		return nil, 0, fmt.Errorf("missing %q column", textColumn)
	}
	if labelIdx < 0 && src.LabelOverride == nil {
		return nil, 0, fmt.Errorf("missing %q column and no override configured", labelColumn)
	}

	var rows []domain.LabeledExample
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row; keep going.
			dropped++
			continue
		}
		if textIdx >= len(record) {
			dropped++
			continue
		}

		text := textproc.Normalize(record[textIdx])
		if text == "" {
			dropped++
			continue
		}

		label := 0
		if src.LabelOverride != nil {
			label = *src.LabelOverride
		} else {
			parsed, ok := parseLabel(record, labelIdx)
			if !ok {
				dropped++
				continue
			}
			label = parsed
		}

		rows = append(rows, domain.LabeledExample{Text: text, Label: label})
	}

	return rows, dropped, nil
}

// parseLabel coerces the label cell to an integer; "1.0"-style floats
// occur in hand-edited files.
func parseLabel(record []string, idx int) (int, bool) {
	if idx < 0 || idx >= len(record) {
		return 0, false
	}
	cell := strings.TrimSpace(record[idx])
	if cell == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// splitIndices produces a deterministic shuffled 80/20 split.
func splitIndices(n int, holdout float64, seed int64) (train, test []int) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	testSize := int(float64(n) * holdout)
	return order[testSize:], order[:testSize]
}

func subset(texts []string, labels []int, idx []int) ([]string, []int) {
	outTexts := make([]string, len(idx))
	outLabels := make([]int, len(idx))
	for i, j := range idx {
		outTexts[i] = texts[j]
		outLabels[i] = labels[j]
	}
	return outTexts, outLabels
}
