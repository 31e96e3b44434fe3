package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"
)

// sessionResponse is the shape returned by the auth endpoints
type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		ID            uint64 `json:"id"`
		Username      string `json:"username"`
		DepositWallet int64  `json:"depositWallet"`
	} `json:"user"`
}

// testResult contains metrics for a single purchase request
type testResult struct {
	StatusCode   int
	ResponseTime time.Duration
	Err          error
}

// testStats contains aggregated test statistics
type testStats struct {
	mu            sync.Mutex
	total         int
	succeeded     int
	insufficient  int
	failed        int
	responseTimes []time.Duration
	statusCounts  map[int]int
}

func (s *testStats) record(r testResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.responseTimes = append(s.responseTimes, r.ResponseTime)
	s.statusCounts[r.StatusCode]++
	switch {
	case r.StatusCode == http.StatusCreated:
		s.succeeded++
	case r.StatusCode == http.StatusPaymentRequired:
		s.insufficient++
	default:
		s.failed++
	}
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent buyers")
	requestsPerBuyer := flag.Int("n", 20, "Purchase attempts per buyer")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	productID := flag.Uint64("product", 1, "Product ID to purchase")
	adminToken := flag.String("admin", "", "Admin session token used to fund buyers (optional)")
	fundAmount := flag.Int64("fund", 1000000, "Deposit per buyer in whole VND (requires -admin)")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}
	stats := &testStats{statusCounts: make(map[int]int)}

	// Register one throwaway buyer per worker
	run := rand.Int63()
	tokens := make([]string, 0, *concurrency)
	for i := 0; i < *concurrency; i++ {
		username := fmt.Sprintf("loadbuyer-%d-%d", run, i)
		session, err := register(client, *baseURL, username)
		if err != nil {
			fmt.Printf("failed to register %s: %v\n", username, err)
			return
		}
		if *adminToken != "" {
			if err := fund(client, *baseURL, *adminToken, session.User.ID, *fundAmount); err != nil {
				fmt.Printf("failed to fund %s: %v\n", username, err)
				return
			}
		}
		tokens = append(tokens, session.Token)
	}

	fmt.Printf("Starting load test: %d buyers x %d purchases of product %d\n",
		*concurrency, *requestsPerBuyer, *productID)

	start := time.Now()
	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			for i := 0; i < *requestsPerBuyer; i++ {
				stats.record(purchase(client, *baseURL, token, *productID))
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}(token)
	}
	wg.Wait()

	printStats(stats, time.Since(start))
}

func register(client *http.Client, baseURL, username string) (*sessionResponse, error) {
	payload, _ := json.Marshal(map[string]string{
		"username": username,
		"password": "load-test-pass",
	})

	resp, err := client.Post(baseURL+"/api/auth/register", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

func fund(client *http.Client, baseURL, adminToken string, userID uint64, amount int64) error {
	payload, _ := json.Marshal(map[string]any{
		"amount": amount,
	})

	url := fmt.Sprintf("%s/api/admin/users/%d/deposit", baseURL, userID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func purchase(client *http.Client, baseURL, token string, productID uint64) testResult {
	url := fmt.Sprintf("%s/api/purchase/%d", baseURL, productID)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return testResult{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return testResult{ResponseTime: elapsed, Err: err}
	}
	defer resp.Body.Close()

	return testResult{StatusCode: resp.StatusCode, ResponseTime: elapsed}
}

func printStats(stats *testStats, total time.Duration) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	fmt.Println("\n--- Results ---")
	fmt.Printf("Total requests:      %d in %s\n", stats.total, total.Round(time.Millisecond))
	fmt.Printf("Purchases completed: %d\n", stats.succeeded)
	fmt.Printf("Insufficient funds:  %d\n", stats.insufficient)
	fmt.Printf("Other failures:      %d\n", stats.failed)

	for status, count := range stats.statusCounts {
		fmt.Printf("  HTTP %d: %d\n", status, count)
	}

	if len(stats.responseTimes) == 0 {
		return
	}
	sorted := make([]time.Duration, len(stats.responseTimes))
	copy(sorted, stats.responseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	fmt.Printf("Latency min/avg/p95/max: %s / %s / %s / %s\n",
		sorted[0].Round(time.Millisecond),
		(sum / time.Duration(len(sorted))).Round(time.Millisecond),
		sorted[len(sorted)*95/100].Round(time.Millisecond),
		sorted[len(sorted)-1].Round(time.Millisecond),
	)
}
