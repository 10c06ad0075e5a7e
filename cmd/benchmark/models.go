package main

import "time"

type TextRequest struct {
	Food string `json:"food"`
}

type ImageRequest struct {
	Image     string `json:"image"`
	MediaType string `json:"media_type"`
}

// Verdict holds the few fields the benchmark reports on; the rest of the
// model's answer is ignored.
type Verdict struct {
	Food   string `json:"food"`
	Rating int    `json:"rating"`
}

type BenchResult struct {
	Input    string
	Kind     string
	Duration time.Duration
	Rating   int
	Err      error
	Size     int64
}

type Agg struct {
	Count      int
	Failed     int
	Total      time.Duration
	TotalBytes int64
	RatingSum  int
}
