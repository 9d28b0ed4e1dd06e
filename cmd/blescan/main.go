// Command blescan is a manual test for the BLE scanner. It sweeps for the
// given duration and prints every advertisement seen, marking the one that
// matches the target name.
//
// Usage:
//
//	go run ./cmd/blescan [--name Bittle] [--seconds 10]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jmbarzee/visionpup/internal/ble"
)

func main() {
	name := flag.String("name", "Bittle", "target peripheral name")
	seconds := flag.Int("seconds", 10, "sweep duration in seconds")
	flag.Parse()

	adapter := ble.NewTinygoAdapter()
	if err := adapter.Enable(); err != nil {
		log.Fatalf("enable BLE adapter: %v", err)
	}

	fmt.Printf("Scanning for %ds (target %q)...\n", *seconds, *name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*seconds)*time.Second)
	defer cancel()

	seen := make(map[string]bool)
	err := adapter.Scan(ctx, func(adv ble.Advertisement) bool {
		if seen[adv.Address] {
			return false
		}
		seen[adv.Address] = true

		marker := " "
		if adv.Name == *name {
			marker = "*"
		}
		fmt.Printf("%s %-20q %s RSSI %d\n", marker, adv.Name, adv.Address, adv.RSSI)
		return false
	})
	if err != nil {
		log.Fatalf("scan: %v", err)
	}

	fmt.Printf("Done. %d peripheral(s) seen.\n", len(seen))
}
