package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ReadModelRefresher reloads the derived read model from the store.
type ReadModelRefresher interface {
	RefreshAll(ctx context.Context) error
}

var readModelRefresher ReadModelRefresher

// SetReadModelRefresher installs the refresher implementation.
func SetReadModelRefresher(refresher ReadModelRefresher) {
	readModelRefresher = refresher
}

// InitCronJobs registers the scheduled jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron) error {
	// Nightly read-model rebuild at midnight
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("running nightly read-model refresh at: %v", now)
		if readModelRefresher == nil {
			log.Printf("read-model refresher is not configured")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := readModelRefresher.RefreshAll(ctx); err != nil {
			log.Printf("nightly read-model refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
