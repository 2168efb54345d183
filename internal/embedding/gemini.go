package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// maxBatchSize is the largest batch the embeddings API accepts in one call.
const maxBatchSize = 100

// GeminiOracle implements Oracle with the Gemini embeddings API
type GeminiOracle struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	config *Config
}

// NewGeminiOracle creates a new Gemini embedding oracle
func NewGeminiOracle(ctx context.Context, config *Config, apiKey string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, &OracleUnavailableError{Provider: ProviderGemini, Message: "API key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &OracleUnavailableError{Provider: ProviderGemini, Message: "failed to create Gemini client", Cause: err}
	}

	modelName := config.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	model := client.EmbeddingModel(modelName)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiOracle{
		client: client,
		model:  model,
		config: config.WithModel(modelName),
	}, nil
}

// Embed encodes texts in batches of at most maxBatchSize
func (o *GeminiOracle) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		batch := o.model.NewBatch()
		for _, text := range texts[start:end] {
			batch.AddContent(genai.Text(text))
		}

		resp, err := o.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &EmbedError{Message: fmt.Sprintf("batch of %d texts", end-start), Cause: err}
		}
		if len(resp.Embeddings) != end-start {
			return nil, &EmbedError{Message: fmt.Sprintf("expected %d embeddings, got %d", end-start, len(resp.Embeddings))}
		}
		for _, e := range resp.Embeddings {
			vectors = append(vectors, e.Values)
		}
	}
	return vectors, nil
}

// Model returns the configured model name
func (o *GeminiOracle) Model() string {
	return o.config.Model
}

// Close releases resources held by the client
func (o *GeminiOracle) Close() error {
	if o.client != nil {
		return o.client.Close()
	}
	return nil
}
