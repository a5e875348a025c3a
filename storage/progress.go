package storage

// Progresser receives the progress of a batch operation
type Progresser interface {
	Progress(done, total int)
}
