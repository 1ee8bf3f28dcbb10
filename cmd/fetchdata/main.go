package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"NewsVerifier/internal/config"
	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/infrastructure/newsdata"
	"NewsVerifier/internal/logging"
)

const collectQuery = "technology OR finance OR politics OR health"

func main() {
	_ = godotenv.Load()

	target := flag.Int("n", 100, "number of articles to collect")
	out := flag.String("out", "data/new_real_news_data.csv", "output CSV path")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	client := newsdata.NewClient(cfg.NewsAPI.Endpoint, cfg.NewsAPI.APIKey,
		logger.With("component", "newsdata"))

	examples, err := client.CollectLabeled(context.Background(), collectQuery, *target)
	if err != nil {
		logger.Warn("collection stopped early", "collected", len(examples), "error", err)
	}
	if len(examples) == 0 {
		logger.Error("no articles collected, check the API key and plan limits")
		os.Exit(1)
	}

	if err := writeCSV(*out, examples); err != nil {
		logger.Error("write output", "path", *out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Collected %d real news articles into %s.\n", len(examples), *out)
	fmt.Println("Next: run trainmodel to retrain the model.")
}

func writeCSV(path string, examples []domain.LabeledExample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"text", "label"}); err != nil {
		return err
	}
	for _, ex := range examples {
		if err := w.Write([]string{ex.Text, strconv.Itoa(ex.Label)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
