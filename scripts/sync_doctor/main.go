// Command sync_doctor compares the on-device booking document with the
// configured remote document and reports drift. It is a diagnostic for
// support cases where a device looks out of sync; it never writes anywhere.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/zad-edu/masadr2040/internal/localstore"
	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/remote"
	"github.com/zad-edu/masadr2040/pkg/config"
)

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "remote request timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Remote.Configured() {
		log.Fatal("remote endpoint not configured, nothing to compare against")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}
	defer db.Close()

	local, err := localstore.NewDocumentRepository(db, cfg.LocalStore.DocumentKey, nil).Load(ctx)
	if err != nil {
		log.Fatalf("failed to load local document: %v", err)
	}

	backend, err := remote.NewBackend(cfg.Remote)
	if err != nil {
		log.Fatalf("failed to build remote backend: %v", err)
	}
	remoteDoc, err := backend.Pull(ctx)
	if err != nil {
		log.Fatalf("failed to pull remote document: %v", err)
	}

	drift := report(local, remoteDoc, backend.Name())
	if drift {
		os.Exit(1)
	}
}

func report(local, remoteDoc []models.Booking, provider string) bool {
	fmt.Println("Sync Doctor Report")
	fmt.Println("==================")
	fmt.Printf("Provider: %s\n", provider)
	fmt.Printf("Local bookings:  %d\n", len(local))
	fmt.Printf("Remote bookings: %d\n", len(remoteDoc))

	localByID := index(local)
	remoteByID := index(remoteDoc)

	drift := false
	for id, b := range localByID {
		rb, ok := remoteByID[id]
		switch {
		case !ok:
			drift = true
			fmt.Printf("[LOCAL ONLY]  %s %s p%d %s\n", id, b.Day, b.Period, b.Teacher)
		case b != rb:
			drift = true
			fmt.Printf("[MISMATCH]    %s local=%s p%d %s remote=%s p%d %s\n",
				id, b.Day, b.Period, b.Teacher, rb.Day, rb.Period, rb.Teacher)
		}
	}
	for id, b := range remoteByID {
		if _, ok := localByID[id]; !ok {
			drift = true
			fmt.Printf("[REMOTE ONLY] %s %s p%d %s\n", id, b.Day, b.Period, b.Teacher)
		}
	}

	if drift {
		fmt.Println("Result: DRIFT (the next poll or push will reconcile)")
	} else {
		fmt.Println("Result: IN SYNC")
	}
	return drift
}

func index(bookings []models.Booking) map[string]models.Booking {
	m := make(map[string]models.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return m
}
