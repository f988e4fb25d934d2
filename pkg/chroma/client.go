package chroma

import (
	"context"
	"fmt"
	"log"
	"os"

	"emailsmart-backend/pkg/config"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
)

// ChromaClient wraps the Chroma Cloud client with the reports collection
type ChromaClient struct {
	client     chroma.Client
	embedFunc  *gemini.GeminiEmbeddingFunction
	collection chroma.Collection
}

func NewChromaClient(cfg *config.Config) (*ChromaClient, error) {
	if cfg.ChromaAPIKey == "" {
		return nil, fmt.Errorf("CHROMA_API_KEY is required")
	}

	// The embedding function reads the Gemini key from the environment
	if cfg.GeminiApiKey != "" {
		os.Setenv("GEMINI_API_KEY", cfg.GeminiApiKey)
	}

	embedFunc, err := gemini.NewGeminiEmbeddingFunction(
		gemini.WithEnvAPIKey(),
		gemini.WithDefaultModel("text-embedding-004"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
	}

	var client chroma.Client
	if cfg.ChromaDatabase != "" && cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithDatabaseAndTenant(cfg.ChromaDatabase, cfg.ChromaTenant),
		)
	} else if cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithTenant(cfg.ChromaTenant),
		)
	} else {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Chroma client: %w", err)
	}

	ctx := context.Background()
	collection, err := client.GetOrCreateCollection(
		ctx,
		"reports",
		chroma.WithEmbeddingFunctionCreate(embedFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("Initialized Chroma client with collection: reports")

	return &ChromaClient{
		client:     client,
		embedFunc:  embedFunc,
		collection: collection,
	}, nil
}

// UpsertReport stores or refreshes the embedding document for a report.
// The document is the title plus summary, which is what searches match on.
func (c *ChromaClient) UpsertReport(ctx context.Context, reportID, title, summary string) error {
	doc := title + "\n\n" + summary
	if len(doc) > 10000 {
		// Truncate if too long (embedding models have token limits)
		doc = doc[:10000]
	}

	metadata, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
		"report_id": reportID,
		"title":     title,
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata: %w", err)
	}

	err = c.collection.Upsert(
		ctx,
		chroma.WithIDs(chroma.DocumentID(reportID)),
		chroma.WithMetadatas(metadata),
		chroma.WithTexts(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert report embedding: %w", err)
	}
	return nil
}

// SearchReports returns report IDs ranked by semantic similarity to query
func (c *ChromaClient) SearchReports(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	result, err := c.collection.Query(
		ctx,
		chroma.WithQueryTexts(query),
		chroma.WithNResults(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("semantic query failed: %w", err)
	}
	if result == nil || result.CountGroups() == 0 {
		return []string{}, nil
	}

	idGroups := result.GetIDGroups()
	if len(idGroups) == 0 {
		return []string{}, nil
	}

	ids := make([]string, 0, len(idGroups[0]))
	for _, id := range idGroups[0] {
		ids = append(ids, string(id))
	}
	return ids, nil
}

// DeleteReport removes a report's embedding when the report is deleted
func (c *ChromaClient) DeleteReport(ctx context.Context, reportID string) error {
	err := c.collection.Delete(
		ctx,
		chroma.WithIDsDelete(chroma.DocumentID(reportID)),
	)
	if err != nil {
		return fmt.Errorf("failed to delete report embedding: %w", err)
	}
	return nil
}
