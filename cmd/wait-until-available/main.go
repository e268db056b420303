package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/client"
)

// Usage example on the command line:
// > CRM_API_URL=http://localhost:8080 go run main.go -interval=5s -max=2m
func main() {
	interval := flag.Duration("interval", 5*time.Second, "the time between two attempts")
	maxWait := flag.Duration("max", 0, "give up after this time, 0 means never")
	flag.Parse()

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

	totalWaitTime := time.Duration(0)
	for {
		err := c.Ping(context.Background())
		if err == nil {
			fmt.Println("service available at", cfg.APIURL)
			return
		}
		fmt.Println(err)
		if *maxWait > 0 && totalWaitTime >= *maxWait {
			fmt.Println("giving up")
			os.Exit(1)
		}
		totalWaitTime += *interval
		fmt.Printf("Waiting %s", totalWaitTime)
		fmt.Println()
		time.Sleep(*interval)
	}
}
