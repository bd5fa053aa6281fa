// Command seed populates a running service with synthetic profiles so the
// recommendation flow can be exercised locally.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/okian/duet/internal/domain/model"
	"github.com/okian/duet/internal/domain/questionnaire"
)

const (
	defaultProfiles = 50
	defaultTimeout  = 10 * time.Second
	runTimeout      = 5 * time.Minute
)

var (
	names = []string{
		"Alex", "Bailey", "Casey", "Dana", "Elliot", "Frankie", "Gray",
		"Harper", "Indigo", "Jordan", "Kai", "Logan", "Morgan", "Noor",
		"Oakley", "Parker", "Quinn", "Riley", "Sage", "Taylor",
	}
	grades  = []string{"freshman", "sophomore", "junior", "senior"}
	hobbies = []string{
		"photography", "basketball", "gaming", "painting", "hiking",
		"baking", "robotics", "theater", "swimming", "chess",
	}
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		count    = flag.Int("profiles", defaultProfiles, "Number of profiles to generate and submit")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed for reproducible data")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		complete = flag.Float64("complete", 0.9, "Probability a profile answers each question")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: *timeout}

	submitted := 0
	for i := 0; i < *count; i++ {
		profile := randomProfile(rng, i, *complete)
		if err := post(ctx, client, *baseURL+"/profiles", profile); err != nil {
			os.Stderr.WriteString(fmt.Sprintf("profile %d: %v\n", i, err))
			continue
		}
		submitted++
	}

	fmt.Printf("submitted %d/%d profiles to %s\n", submitted, *count, *baseURL)
}

func randomProfile(rng *rand.Rand, i int, complete float64) model.Profile {
	answers := model.AnswerSet{}
	for _, q := range questionnaire.Default().Questions() {
		if rng.Float64() > complete {
			continue
		}
		switch q.Type {
		case questionnaire.MultipleChoice:
			answers[q.ID] = q.Options[rng.Intn(len(q.Options))].Value
		case questionnaire.Slider:
			answers[q.ID] = q.Min + rng.Float64()*(q.Max-q.Min)
		}
	}

	picked := make([]string, 0, 3)
	for _, idx := range rng.Perm(len(hobbies))[:3] {
		picked = append(picked, hobbies[idx])
	}

	return model.Profile{
		ID:      fmt.Sprintf("seed-%04d", i),
		Name:    names[rng.Intn(len(names))],
		Grade:   grades[rng.Intn(len(grades))],
		Bio:     "Generated profile for local testing",
		Hobbies: picked,
		Answers: answers,
	}
}

func post(ctx context.Context, client *http.Client, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
