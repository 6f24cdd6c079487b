package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	threadsafe "github.com/yeungkaho/ThreadSafe"
	"gopkg.in/yaml.v3"
)

type limits struct {
	Rate  int `json:"rate" yaml:"rate"`
	Burst int `json:"burst" yaml:"burst"`
}

type serviceConfig struct {
	Endpoint threadsafe.Value[string] `json:"endpoint" yaml:"endpoint"`
	Limits   threadsafe.Value[limits] `json:"limits,omitzero" yaml:"limits,omitempty"`
	Comment  threadsafe.Value[string] `json:"comment,omitzero" yaml:"comment,omitempty"`
}

func main() {
	live := threadsafe.New(limits{Rate: 100, Burst: 10})

	// Readers hammer the live container while the main loop rewrites it.
	var reads atomic.Int64
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for {
				select {
				case <-stop:
					return
				default:
					l := live.Get()
					if l.Burst > l.Rate {
						fmt.Println("observed inconsistent limits:", l)
					}
					reads.Add(1)
				}
			}
		}()
	}
	defer close(stop)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			cycles++
			fmt.Printf("\n--- Cycle %d ---\n", cycles)

			live.Set(limits{Rate: 100 * cycles, Burst: 10 * cycles})
			fmt.Println("live limits:", live)

			// A staging clone diverges on its first write; production stays put.
			staging := live.Clone()
			staging.Set(limits{Rate: 1, Burst: 1})
			fmt.Println("staging limits:", staging)
			fmt.Println("live after staging write:", live)

			cfg := serviceConfig{
				Endpoint: threadsafe.New("https://api.internal:8443"),
				Limits:   live,
				// Comment left absent: omitted from both encodings
			}
			jsonOut, err := json.Marshal(cfg)
			if err != nil {
				panic(err)
			}
			fmt.Println("config as JSON:", string(jsonOut))
			yamlOut, err := yaml.Marshal(cfg)
			if err != nil {
				panic(err)
			}
			fmt.Print("config as YAML:\n", string(yamlOut))

			fmt.Printf("reads so far: %d\n", reads.Load())

			if cycles >= 12 {
				fmt.Println("Demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
