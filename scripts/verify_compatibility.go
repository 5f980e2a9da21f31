package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Matches the server's /check response.
type checkResponse struct {
	Removed     int      `json:"removed"`
	TotalBefore int      `json:"total_before"`
	Messages    []string `json:"messages"`
}

func main() {
	// 1. Start a previously built server
	log.Println("Starting server...")
	cmd := exec.Command("./server", "-http_addr", ":8090", "-log_level", "warn")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
	}()

	// Wait for startup
	time.Sleep(2 * time.Second)
	if _, err := httpGetBody("http://localhost:8090/healthz"); err != nil {
		log.Fatalf("Health check failed: %v", err)
	}

	// 2. Over-budget shulker box: 100 pages of 320 three-byte characters per
	// book, 27 books nested in a box inside the chest.
	log.Println("Testing oversized nested box...")
	page := strings.Repeat("€", 320)
	pages := make([]string, 100)
	for i := range pages {
		pages[i] = page
	}
	slots := make([]map[string]any, 27)
	for i := range slots {
		slots[i] = map[string]any{"index": i, "material": "written_book", "pages": pages}
	}
	doc := map[string]any{
		"subject": "5d1f4bd2-3c9e-4c61-9b4b-8a2f7d0c1e11",
		"ranges": []any{
			map[string]any{
				"name": "chest",
				"size": 27,
				"slots": []any{
					map[string]any{"index": 0, "material": "shulker_box", "contents": map[string]any{"slots": slots}},
				},
			},
		},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		log.Fatalf("Failed to encode document: %v", err)
	}

	resp, err := http.Post("http://localhost:8090/check", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Check failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		log.Fatalf("Check returned %d: %s", resp.StatusCode, b)
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}
	// 27 * 96_003 = 2_592_081; each removal takes 96_003 off.
	if out.TotalBefore != 2_592_081 {
		log.Fatalf("Size mismatch: expected 2592081, got %d", out.TotalBefore)
	}
	if out.Removed != 13 || len(out.Messages) != 1 {
		log.Fatalf("Removal mismatch: removed=%d messages=%v", out.Removed, out.Messages)
	}
	log.Println("✅ Eviction Verified")

	// 3. Metrics
	log.Println("Testing metrics...")
	metrics, err := httpGetBody("http://localhost:8090/metrics")
	if err != nil {
		log.Fatalf("Metrics failed: %v", err)
	}
	if !strings.Contains(metrics, "bookban_removals_total 13") {
		log.Fatalf("Metrics missing removal count")
	}
	log.Println("✅ Metrics Verified")
}

func httpGetBody(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status code %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
