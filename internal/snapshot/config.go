package snapshot

import "time"

// Config holds the options of a snapshot run.
type Config struct {
	OutputFile string // HTML file to write; empty generates a timestamped name
	ChartsDir  string // optional directory for standalone skills.svg and audit.svg
}

// Stats summarizes a snapshot run.
type Stats struct {
	Login        string
	Skills       int
	Warnings     int
	BytesWritten int64
	Files        []string
	StartTime    time.Time
	Duration     time.Duration
}
