// Command loadtest registers a few users and fires concurrent fraud checks at
// a running API. It then verifies that every user's balance equals the starting
// credits minus ten per successful prediction.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// Scenario is one kind of transaction sent for scoring
type Scenario struct {
	Name     string
	Amount   float64
	Merchant string
	Category string
	Hour     int
}

// TestResult contains metrics for a single request
type TestResult struct {
	User         int
	StatusCode   int
	ResponseTime time.Duration
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests int
	Scored        int
	Rejected      int
	Failed        int
	TotalTime     time.Duration
	ResponseTimes []time.Duration
	StatusCounts  map[int]int
	ScoredByUser  map[int]int
	ScenarioStats map[string]int
	Lock          sync.Mutex
}

type session struct {
	token   string
	credits int64
}

func main() {
	concurrency := pflag.IntP("concurrency", "c", 8, "number of concurrent goroutines")
	totalRequests := pflag.IntP("requests", "n", 200, "total number of fraud checks to send")
	users := pflag.IntP("users", "u", 3, "number of users to register and spread load across")
	purchase := pflag.StringP("purchase", "p", "0", "dollars of credits each user buys before the run")
	baseURL := pflag.String("url", "http://localhost:8000", "base URL of the API")
	delay := pflag.Duration("delay", 0, "pause before each request")
	pflag.Parse()

	amount, err := decimal.NewFromString(*purchase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid purchase amount: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	sessions := make([]*session, *users)
	for i := range sessions {
		s, err := setupUser(client, *baseURL, amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "user setup failed: %v\n", err)
			os.Exit(1)
		}
		sessions[i] = s
		fmt.Printf("User %d starts with %d credits\n", i, s.credits)
	}

	scenarios := []Scenario{
		{"Groceries", 42.10, "walmart", "food", 18},
		{"Streaming", 15.99, "netflix", "entertainment", 21},
		{"Flight", 780.00, "delta", "travel", 9},
		{"Night transfer", 2500.00, "unknown", "transfer", 3},
		{"ATM", 300.00, "chase", "withdrawal", 2},
	}

	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d across %d users\n", *totalRequests, *users)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		StatusCounts:  make(map[int]int),
		ScoredByUser:  make(map[int]int),
		ScenarioStats: make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	results := make(chan TestResult, *totalRequests)
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *delay, sessions, scenarios, jobs, results, stats)
		}()
	}
	wg.Wait()
	close(results)
	stats.TotalTime = time.Since(startTime)

	for result := range results {
		stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
		switch {
		case result.Error != nil:
			stats.Failed++
		case result.StatusCode == http.StatusOK:
			stats.Scored++
			stats.ScoredByUser[result.User]++
		default:
			stats.Rejected++
		}
		if result.Error == nil {
			stats.StatusCounts[result.StatusCode]++
		}
	}

	printResults(stats)

	if !verifyBalances(client, *baseURL, sessions, stats) {
		os.Exit(1)
	}
}

func worker(client *http.Client, baseURL string, delay time.Duration, sessions []*session,
	scenarios []Scenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	for range jobs {
		if delay > 0 {
			time.Sleep(delay)
		}

		user := rand.Intn(len(sessions))
		scenario := scenarios[rand.Intn(len(scenarios))]

		stats.Lock.Lock()
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		hour := scenario.Hour
		body := dto.PredictRequest{
			Amount:   scenario.Amount,
			Merchant: scenario.Merchant,
			Category: scenario.Category,
			Hour:     &hour,
			UserAge:  18 + rand.Intn(60),
		}

		start := time.Now()
		status, err := call(client, http.MethodPost, baseURL+"/fraud/predict", sessions[user].token, body, nil)
		results <- TestResult{
			User:         user,
			StatusCode:   status,
			ResponseTime: time.Since(start),
			Error:        err,
		}
	}
}

// setupUser registers a throwaway account and optionally buys credits
func setupUser(client *http.Client, baseURL string, purchase decimal.Decimal) (*session, error) {
	suffix := uuid.NewString()[:8]
	register := dto.RegisterRequest{
		Name:     "Load " + suffix,
		Email:    "load-" + suffix + "@example.com",
		Username: "load_" + suffix,
		Password: "loadtest-" + suffix,
	}

	var token dto.TokenResponse
	status, err := call(client, http.MethodPost, baseURL+"/auth/register", "", register, &token)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("register returned HTTP %d", status)
	}

	s := &session{token: token.AccessToken, credits: token.User.Credits}
	if purchase.IsPositive() {
		var bought dto.PurchaseResponse
		status, err := call(client, http.MethodPost, baseURL+"/fraud/credits/purchase", s.token, dto.PurchaseRequest{Amount: purchase}, &bought)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("purchase returned HTTP %d", status)
		}
		s.credits = bought.Credits
	}
	return s, nil
}

// verifyBalances checks that each balance reflects exactly the scored requests
func verifyBalances(client *http.Client, baseURL string, sessions []*session, stats *TestStats) bool {
	fmt.Println("\n----------------- BALANCES -----------------")
	ok := true
	for i, s := range sessions {
		var balance dto.BalanceResponse
		status, err := call(client, http.MethodGet, baseURL+"/fraud/credits/balance", s.token, nil, &balance)
		if err != nil || status != http.StatusOK {
			fmt.Printf("User %d: balance check failed (status %d, err %v)\n", i, status, err)
			ok = false
			continue
		}

		expected := s.credits - int64(stats.ScoredByUser[i])*entity.PredictionCost
		mark := "OK"
		if balance.Credits != expected || balance.Credits < 0 {
			mark = "MISMATCH"
			ok = false
		}
		fmt.Printf("User %d: %d scored, balance %d, expected %d  %s\n",
			i, stats.ScoredByUser[i], balance.Credits, expected, mark)
	}
	return ok
}

func call(client *http.Client, method, url, token string, body, out any) (int, error) {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequest(method, url, &payload)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func printResults(stats *TestStats) {
	var total time.Duration
	for _, d := range stats.ResponseTimes {
		total += d
	}

	var avg, p50, p90, p99 time.Duration
	if n := len(stats.ResponseTimes); n > 0 {
		sorted := slices.Clone(stats.ResponseTimes)
		slices.Sort(sorted)
		avg = total / time.Duration(n)
		p50 = sorted[n*50/100]
		p90 = sorted[n*90/100]
		p99 = sorted[n*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:  %d\n", stats.TotalRequests)
	fmt.Printf("Scored:          %d\n", stats.Scored)
	fmt.Printf("Rejected:        %d (402 insufficient credits, 429 rate limited)\n", stats.Rejected)
	fmt.Printf("Transport errors: %d\n", stats.Failed)
	fmt.Printf("Total Test Time: %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:      %.2f req/s\n", float64(len(stats.ResponseTimes))/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average: %v\n", avg)
	fmt.Printf("P50:     %v\n", p50)
	fmt.Printf("P90:     %v\n", p90)
	fmt.Printf("P99:     %v\n", p99)

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for code, count := range stats.StatusCounts {
		fmt.Printf("HTTP %d: %d\n", code, count)
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d\n", name, count)
	}
}
