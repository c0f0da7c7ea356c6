// Package ai wraps the hosted Gemini models behind the three forum AI
// operations: tag suggestion, answer summarization and next-word prediction.
// The service holds no request state; the only shared state is the tag
// embedding cache, which is injected and warmed at startup.
package ai

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/qhub/qhub_api/internal/cache"
)

const suggestedTagCount = 3

type Service struct {
	client     *genai.Client
	genModel   string
	embedModel string
	tags       []string
	embeddings *cache.EmbeddingCache
}

func New(ctx context.Context, apiKey, genModel, embedModel string, tags []string, embeddings *cache.EmbeddingCache) (*Service, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Service{
		client:     client,
		genModel:   genModel,
		embedModel: embedModel,
		tags:       tags,
		embeddings: embeddings,
	}, nil
}

func (s *Service) Close() error {
	return s.client.Close()
}

// WarmTagEmbeddings computes and caches the vector for every tag in the
// vocabulary. Called once at startup so request handling never pays for a
// cold vocabulary.
func (s *Service) WarmTagEmbeddings(ctx context.Context) error {
	for _, tag := range s.tags {
		if _, err := s.tagEmbedding(ctx, tag); err != nil {
			return fmt.Errorf("warming embedding for tag %q: %w", tag, err)
		}
	}
	return nil
}

func (s *Service) tagEmbedding(ctx context.Context, tag string) ([]float32, error) {
	vector, found, err := s.embeddings.Get(ctx, tag)
	if err != nil {
		// A cache failure degrades to recomputing, it never fails the request.
		log.Println("embedding cache read failed", err)
	}
	if found {
		return vector, nil
	}

	vector, err = s.embed(ctx, tag)
	if err != nil {
		return nil, err
	}
	if err := s.embeddings.Set(ctx, tag, vector); err != nil {
		log.Println("embedding cache write failed", err)
	}
	return vector, nil
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	em := s.client.EmbeddingModel(s.embedModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return res.Embedding.Values, nil
}

// SuggestTags ranks the configured tag vocabulary by cosine similarity to
// the question's title and description and returns the top three.
func (s *Service) SuggestTags(ctx context.Context, title, description string) ([]string, error) {
	query, err := s.embed(ctx, title+" "+description)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(s.tags))
	for i, tag := range s.tags {
		vector, err := s.tagEmbedding(ctx, tag)
		if err != nil {
			return nil, err
		}
		scores[i] = cosineSimilarity(query, vector)
	}

	ranked := rankByScore(s.tags, scores)
	if len(ranked) > suggestedTagCount {
		ranked = ranked[:suggestedTagCount]
	}
	return ranked, nil
}

// Summarize produces a short abstract of an answer's content.
func (s *Service) Summarize(ctx context.Context, content string) (string, error) {
	model := s.client.GenerativeModel(s.genModel)
	model.SetMaxOutputTokens(120)

	prompt := fmt.Sprintf("Summarize the following forum answer in at most two sentences. Reply with the summary only.\n\n%s", content)
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	summary := strings.TrimSpace(responseText(res))
	if summary == "" {
		return "", fmt.Errorf("empty summarization response")
	}
	return summary, nil
}

// NextWords predicts up to five candidate next words for a partial sentence.
func (s *Service) NextWords(ctx context.Context, text string) ([]string, error) {
	model := s.client.GenerativeModel(s.genModel)
	model.SetMaxOutputTokens(40)

	prompt := fmt.Sprintf("List the five most likely single next words continuing this text, one per line, no numbering, no punctuation:\n\n%s", text)
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("next word: %w", err)
	}

	predictions := parseWordList(responseText(res), 5)
	if len(predictions) == 0 {
		return nil, fmt.Errorf("empty prediction response")
	}
	return predictions, nil
}

func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rankByScore returns items ordered by descending score. Ties keep the
// vocabulary order stable.
func rankByScore(items []string, scores []float64) []string {
	indices := make([]int, len(items))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})

	ranked := make([]string, len(items))
	for i, idx := range indices {
		ranked[i] = items[idx]
	}
	return ranked
}

// parseWordList extracts up to limit distinct single words from model
// output, tolerating numbering and stray punctuation.
func parseWordList(raw string, limit int) []string {
	seen := make(map[string]bool)
	var words []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.-*) ")
		if line == "" {
			continue
		}
		word := strings.Fields(line)[0]
		word = strings.Trim(word, ".,;:!?\"'")
		if word == "" || seen[strings.ToLower(word)] {
			continue
		}
		seen[strings.ToLower(word)] = true
		words = append(words, word)
		if len(words) == limit {
			break
		}
	}
	return words
}
