package tool

// Chunk is one produced stream element: a content fragment or an error,
// never both.
type Chunk struct {
	Content string
	Err     error
}

// ChunksFromSlice creates a ChunkStream from a fixed set of fragments.
// This is useful for tools whose output is already materialized.
func ChunksFromSlice(chunks []string) ChunkStream {
	return func(yield func(string, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// ChunksFromChannel creates a ChunkStream from a channel. This is useful
// for tools that produce output over time; the stream completes when the
// channel is closed.
func ChunksFromChannel(ch <-chan Chunk) ChunkStream {
	return func(yield func(string, error) bool) {
		for c := range ch {
			if !yield(c.Content, c.Err) {
				return
			}

			if c.Err != nil {
				return
			}
		}
	}
}
