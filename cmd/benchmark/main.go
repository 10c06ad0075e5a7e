package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

var photoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:3001", "gateway base URL")
		foodsPath = flag.String("foods", filepath.Join("data", "foods.txt"), "file with one food name per line")
		photosDir = flag.String("photos", filepath.Join("data", "photos"), "directory with food photos")
		timeout   = flag.Duration("timeout", 2*time.Minute, "per-request timeout")
	)
	flag.Parse()

	ctx := context.Background()
	client := &http.Client{Timeout: *timeout}

	var results []BenchResult

	foods, err := readFoods(*foodsPath)
	if err != nil {
		log.Println("WARN: skipping text benchmark:", err)
	}
	for _, food := range foods {
		res := benchmarkFood(ctx, client, *baseURL, food)
		report(res)
		results = append(results, res)
	}

	photos, err := os.ReadDir(*photosDir)
	if err != nil {
		log.Println("WARN: skipping photo benchmark:", err)
	}
	for _, photo := range photos {
		if photo.IsDir() {
			continue
		}
		res := benchmarkPhoto(ctx, client, *baseURL, filepath.Join(*photosDir, photo.Name()))
		report(res)
		results = append(results, res)
	}

	printMarkdown(results)
}

func report(res BenchResult) {
	if res.Err != nil {
		log.Println("ERR:", res.Input, res.Err)
		return
	}
	log.Printf("OK %s rating=%d %v", res.Input, res.Rating, res.Duration)
}

func readFoods(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var foods []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			foods = append(foods, line)
		}
	}
	return foods, sc.Err()
}

func benchmarkFood(ctx context.Context, client *http.Client, baseURL, food string) BenchResult {
	start := time.Now()
	verdict, err := post(ctx, client, baseURL+"/api/analyze", TextRequest{Food: food})
	return BenchResult{
		Input:    food,
		Kind:     "text",
		Duration: time.Since(start),
		Rating:   verdict.Rating,
		Size:     int64(len(food)),
		Err:      err,
	}
}

func benchmarkPhoto(ctx context.Context, client *http.Client, baseURL, path string) BenchResult {
	name := filepath.Base(path)
	mediaType, ok := photoTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return BenchResult{Input: name, Kind: "image", Err: fmt.Errorf("unsupported extension %q", filepath.Ext(path))}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return BenchResult{Input: name, Kind: "image", Err: err}
	}

	start := time.Now()
	verdict, err := post(ctx, client, baseURL+"/api/analyze-image", ImageRequest{
		Image:     base64.StdEncoding.EncodeToString(raw),
		MediaType: mediaType,
	})
	return BenchResult{
		Input:    name,
		Kind:     "image",
		Duration: time.Since(start),
		Rating:   verdict.Rating,
		Size:     int64(len(raw)),
		Err:      err,
	}
}

func post[T any](ctx context.Context, client *http.Client, url string, req T) (Verdict, error) {
	var verdict Verdict

	body, err := sonic.Marshal(req)
	if err != nil {
		return verdict, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return verdict, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return verdict, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return verdict, err
	}
	if resp.StatusCode != http.StatusOK {
		return verdict, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := sonic.Unmarshal(b, &verdict); err != nil {
		return verdict, fmt.Errorf("decode verdict: %w", err)
	}
	return verdict, nil
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		a := m[r.Kind]
		if r.Err != nil {
			a.Failed++
			m[r.Kind] = a
			continue
		}
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		a.RatingSum += r.Rating
		m[r.Kind] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Println("\n## Benchmark Results")
	fmt.Println()
	fmt.Println("| Kind | Requests | Failed | Avg Time | Total Time | Avg Rating | Avg Input Size |")
	fmt.Println("|------|----------|--------|----------|------------|------------|----------------|")

	agg := aggregate(results)
	kinds := make([]string, 0, len(agg))
	for kind := range agg {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		a := agg[kind]
		if a.Count == 0 {
			fmt.Printf("| %s | 0 | %d | - | - | - | - |\n", kind, a.Failed)
			continue
		}
		fmt.Printf("| %s | %d | %d | %v | %v | %.1f | %s |\n",
			kind,
			a.Count,
			a.Failed,
			(a.Total / time.Duration(a.Count)).Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			float64(a.RatingSum)/float64(a.Count),
			humanBytes(a.TotalBytes/int64(a.Count)),
		)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
