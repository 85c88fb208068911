// Package mock provides test double implementations of the AI service
// interfaces.
//
// The mocks let tests run without a reachable AI provider and with
// controlled, deterministic behavior. Custom responses are injected via
// function fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return make([]float32, core.EmbeddingDim), nil
//	}
//
// Defaults are usable as-is: the embedder produces digest vectors, the
// annotator labels everything "Test", and the chatter echoes the message.
package mock
