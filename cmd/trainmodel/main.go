package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"NewsVerifier/internal/config"
	"NewsVerifier/internal/logging"
	"NewsVerifier/internal/training"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	sources := make([]training.DatasetSource, 0, len(cfg.Training.Datasets))
	for _, ds := range cfg.Training.Datasets {
		sources = append(sources, training.DatasetSource{
			Path:          ds.Path,
			LabelOverride: ds.LabelOverride,
			Primary:       ds.Primary,
		})
	}

	trainer := training.NewTrainer(logger.With("component", "trainer"))
	result, err := trainer.TrainAndSave(sources, cfg.Model.VectorizerPath, cfg.Model.ClassifierPath)
	if err != nil {
		switch {
		case errors.Is(err, training.ErrPrimaryDatasetMissing):
			logger.Error("primary dataset not found, cannot train", "error", err)
		case errors.Is(err, training.ErrNoTrainingData):
			logger.Error("no usable training data across all sources", "error", err)
		default:
			logger.Error("training failed", "error", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Trained on %d rows (%d dropped during cleanup), vocabulary size %d.\n",
		result.TotalRows, result.Dropped, result.Vocabulary)
	fmt.Printf("Held-out accuracy estimate (%d train / %d test rows): %.4f\n",
		result.TrainRows, result.TestRows, result.Accuracy)
	fmt.Printf("Deployed pair (refit on all rows) saved to %s and %s.\n",
		cfg.Model.VectorizerPath, cfg.Model.ClassifierPath)
}
