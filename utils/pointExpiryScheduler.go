package utils

import (
	"log"
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"

	"github.com/robfig/cron/v3"
)

// InitializePointExpiryScheduler sets up the daily point expiry sweep
func InitializePointExpiryScheduler() {
	log.Println("[POINT-SCHEDULER] Initializing point expiry scheduler...")

	c := cron.New()

	// Run daily at 4 AM; the sweep is idempotent so overlapping or
	// repeated runs only ever expire an earning once.
	c.AddFunc("0 4 * * *", func() {
		log.Println("[POINT-SCHEDULER] Running daily point expiry sweep...")
		ExpireLapsedPoints()
	})

	c.Start()
	log.Println("[POINT-SCHEDULER] Point expiry scheduler started - runs daily at 4 AM")
}

// ExpireLapsedPoints writes compensating expired entries for every earning
// past its expiry date
func ExpireLapsedPoints() {
	written, err := points.ExpireAll(database.Database.Db, time.Now())
	if err != nil {
		log.Printf("[POINT-SCHEDULER] Error running expiry sweep: %v", err)
		return
	}

	log.Printf("[POINT-SCHEDULER] Expiry sweep wrote %d entries", written)
}
