package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	pkgLog "github.com/vogiaan1904/eventease/pkg/logger"
)

var (
	dataDir   = pflag.String("data-dir", ".", "directory holding the store files")
	numEvents = pflag.Int("events", 5, "number of events to add")
	numUsers  = pflag.Int("users", 20, "number of users to register")
	bookRate  = pflag.Float64("book-rate", 0.5, "probability that a user books each event (0.0-1.0)")
	seed      = pflag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
)

var (
	eventNames = []string{"Jazz Night", "Tech Meetup", "Food Festival", "Film Screening", "Book Fair", "Chess Open", "Comedy Show", "Art Walk"}
	venues     = []string{"City Hall", "Riverside Park", "Grand Theatre", "Public Library", "Community Center"}
)

type summary struct {
	Events   int      `json:"events"`
	Users    []string `json:"users"`
	Bookings int      `json:"bookings"`
	Seed     uint64   `json:"seed"`
}

func main() {
	pflag.Parse()

	if *bookRate < 0 || *bookRate > 1 {
		fmt.Println("Error: --book-rate must be between 0.0 and 1.0")
		pflag.Usage()
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		fmt.Printf("Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{Level: "warn", Mode: "development", Encoding: "console"})
	rnd := rand.New(rand.NewPCG(*seed, *seed))

	userRepo := flatfile.NewUserRepository(filepath.Join(*dataDir, "user_info.txt"), flatfile.UserRepositoryOptions{Rand: rnd}, l)
	eventRepo := flatfile.NewEventRepository(filepath.Join(*dataDir, "events.txt"), l)
	bookingRepo := flatfile.NewBookingRepository(filepath.Join(*dataDir, "bookings.txt"), eventRepo, l)

	out := summary{Seed: *seed}

	existing, err := eventRepo.List(ctx)
	if err != nil {
		fmt.Printf("Failed to read events: %v\n", err)
		os.Exit(1)
	}

	start := time.Now().AddDate(0, 1, 0)
	for i := 0; i < *numEvents; i++ {
		e := models.Event{
			Name:         eventNames[i%len(eventNames)],
			Venue:        venues[rnd.IntN(len(venues))],
			Date:         start.AddDate(0, 0, 7*i).Format("02-01-2006"),
			Time:         fmt.Sprintf("%02d:00", 10+rnd.IntN(11)),
			SeatCapacity: 50 + 10*rnd.IntN(20),
		}
		if err := eventRepo.Add(ctx, e); err != nil {
			fmt.Printf("Failed to add event: %v\n", err)
			os.Exit(1)
		}
		out.Events++
	}
	total := len(existing) + out.Events

	for i := 0; i < *numUsers; i++ {
		name := fmt.Sprintf("demo-user-%d", i+1)
		taken, err := userRepo.ExistsName(ctx, name)
		if err != nil {
			fmt.Printf("Failed to read users: %v\n", err)
			os.Exit(1)
		}
		if taken {
			continue
		}

		code, err := userRepo.GenerateUniqueTicket(ctx)
		if err != nil {
			fmt.Printf("Failed to generate ticket: %v\n", err)
			os.Exit(1)
		}
		if err := userRepo.Save(ctx, code, name); err != nil {
			fmt.Printf("Failed to save user: %v\n", err)
			os.Exit(1)
		}
		out.Users = append(out.Users, fmt.Sprintf("%s,%s", models.FormatTicket(code), name))

		for id := 1; id <= total; id++ {
			if rnd.Float64() >= *bookRate {
				continue
			}
			if err := bookingRepo.Append(ctx, models.EventID(id), name); err != nil {
				fmt.Printf("Failed to book: %v\n", err)
				os.Exit(1)
			}
			out.Bookings++
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Printf("Failed to print summary: %v\n", err)
		os.Exit(1)
	}
}
