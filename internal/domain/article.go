package domain

import "time"

// Article is the text extracted from a news page, ready for classification.
type Article struct {
	URL   string
	Title string
	Text  string
}

// Headline is a single entry of the live news feed.
type Headline struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// LabeledExample is one row of a training corpus.
type LabeledExample struct {
	Text  string
	Label int
}
