// Package timezone keeps every timestamp and calendar date of the application
// in one location, configured through APP_TIMEZONE (an IANA name such as
// "Europe/Rome" or "UTC"). It is initialized on import and falls back to UTC
// when the configured name cannot be loaded.
//
//	now := timezone.Now()
//	date, err := timezone.ParseDate("2025-06-01")
//	label := timezone.Format(now, time.DateOnly)
package timezone
