package larder

import "context"

// TokenCounter counts tokens in text for a language model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
