package utils

import (
	"lms/database"
	analyticsModels "lms/models/analytics"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// closeAbandonedSessions ends sessions left open for more than 24 hours.
// They get a zero duration so abandoned tabs never inflate learning metrics.
func closeAbandonedSessions() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	var stale []analyticsModels.SessionData
	if err := db.Where("end_time IS NULL AND start_time < ?", cutoff).Find(&stale).Error; err != nil {
		logScheduler("Error fetching abandoned sessions: " + err.Error())
		return
	}

	for _, session := range stale {
		endTime := session.StartTime
		session.EndTime = &endTime
		session.DurationSeconds = 0
		db.Save(&session)
	}

	if len(stale) > 0 {
		logScheduler("Closed abandoned sessions")
	}
}

// StartCacheSweeper evicts expired chatbot cache entries every 5 minutes
func StartCacheSweeper(c *cron.Cron, cache *TTLCache) {
	c.AddFunc("*/5 * * * *", func() {
		removed := cache.Sweep()
		if removed > 0 {
			logScheduler("Cache sweep removed expired entries")
		}
	})
	logScheduler("Cache sweeper started - runs every 5 minutes")
}

// StartSessionJanitor closes abandoned sessions every hour
func StartSessionJanitor(c *cron.Cron) {
	c.AddFunc("0 * * * *", func() {
		closeAbandonedSessions()
	})
	logScheduler("Session janitor started - runs hourly")
}

// InitializeSchedulers initializes all background jobs
func InitializeSchedulers(cache *TTLCache) *cron.Cron {
	logScheduler("Initializing schedulers...")

	c := cron.New()

	StartCacheSweeper(c, cache)
	StartSessionJanitor(c)

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
