package model

// APIStatus reports the identity and liveness of a running service.
type APIStatus struct {
	Revision   string         `json:"revision"`
	Version    string         `json:"version"`
	Identity   string         `json:"identity"`
	Heartbeats int64          `json:"heartbeats"`
	Queue      *APIQueueStats `json:"queue,omitempty"`
}

// APIQueueStats summarizes the background queue.
type APIQueueStats struct {
	Running   int `json:"running"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// APIScheduledJob is returned when a request enqueues background work.
type APIScheduledJob struct {
	ID string `json:"id"`
}
