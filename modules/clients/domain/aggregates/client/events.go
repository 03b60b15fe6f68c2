package client

type CreatedEvent struct {
	Result Client
}

type UpdatedEvent struct {
	Result Client
}

// ImportCompletedEvent is published after an import batch is persisted.
type ImportCompletedEvent struct {
	Added       int
	Skipped     int
	Diagnostics []string
}
