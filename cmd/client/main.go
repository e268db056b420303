package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/client"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
)

// Usage example on the command line:
// > CRM_API_URL=http://localhost:8080 go run main.go -sizes=100,1000
func main() {
	sizesFlag := flag.String("sizes", "1000,5000,10000", "comma separated numbers of customers per round")
	flag.Parse()
	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	c, err := client.New(client.Config{BaseURL: cfg.APIURL, Timeout: cfg.APITimeout}, nil)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	ctx := context.Background()

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		ids := make([]string, 0, loops)
		{
			// POST requests
			var duration time.Duration
			for i := 0; i < loops; i++ {
				start := time.Now()
				customer, err := c.Create(ctx, draft(i))
				duration += time.Since(start)
				if err != nil {
					fmt.Println("could not create customer", err)
					panic(err)
				}
				ids = append(ids, customer.Id)
			}
			printAverage(duration, loops)
		}
		{
			// PUT requests
			callInLoop(ids, func(id string) error {
				d := draft(0)
				d.Status = model.StatusActive
				_, err := c.Update(ctx, id, d)
				return err
			})
		}
		{
			// GET requests
			callInLoop(ids, func(id string) error {
				_, err := c.Get(ctx, id)
				return err
			})
		}
		{
			// DELETE requests
			callInLoop(ids, func(id string) error {
				return c.Delete(ctx, id)
			})
		}
		fmt.Println()
	}
}

// draft returns the customer sent by the benchmark.
func draft(i int) model.CustomerDraft {
	company := "Roman Republic"
	lastContact := model.NewDate(2024, time.March, 15)
	return model.CustomerDraft{
		FirstName:   "Marcus",
		LastName:    "Antonius",
		Email:       fmt.Sprintf("marcus.antonius.%d@example.com", i),
		Company:     &company,
		Status:      model.StatusLead,
		LastContact: &lastContact,
	}
}

// callInLoop calls f once per id in random order and prints the average duration in
// microseconds.
func callInLoop(ids []string, f func(id string) error) {
	shuffled := append([]string(nil), ids...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration time.Duration
	for _, id := range shuffled {
		start := time.Now()
		err := f(id)
		duration += time.Since(start)
		if err != nil {
			fmt.Println("request failed", err)
			panic(err)
		}
	}
	printAverage(duration, len(ids))
}

func printAverage(duration time.Duration, loops int) {
	if loops == 0 {
		fmt.Printf("%10s", "-")
		return
	}
	fmt.Printf("%10d", duration.Microseconds()/int64(loops))
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		size, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invalid size %q", field)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
