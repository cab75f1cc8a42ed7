/*
Package testexamples holds the application level constants and shared
resources for the testexamples service: a small fellowship roster used as
the system under test for a collection of testing library examples.
*/
package testexamples

import (
	"fmt"
	"time"
)

const (
	Name    = "testexamples"
	Group   = "ru.rudikov"
	Version = "1.0-SNAPSHOT"

	ShortDateFormat = "2006-01-02T15:04"

	// QueueName prefixes the ids of jobs created by this application.
	QueueName = "testexamples.queue"

	// CensusCacheKey is the environment cache key holding the most
	// recently published roster census.
	CensusCacheKey = "roster.census"

	// RosterLockCacheKey is the environment cache key holding the lock
	// that serializes changes to the roster.
	RosterLockCacheKey = "roster.lock"

	DefaultServicePort    = 3000
	DefaultNumWorkers     = 2
	DefaultQueueCapacity  = 1024
	DefaultCensusInterval = time.Minute
)

// BuildRevision stores the commit in the git repository at build time and is
// specified with -ldflags at build time.
var BuildRevision = ""

// Identity returns the group:name:version coordinates of the build.
func Identity() string { return fmt.Sprintf("%s:%s:%s", Group, Name, Version) }
