package service

import (
	"context"

	"xplorer-be/pkg/relay"
)

// RelayClient is the outbound chat endpoint contract, satisfied by
// pkg/relay.Client.
type RelayClient interface {
	Ask(ctx context.Context, prompt string, history []relay.Message) (*relay.Answer, error)
}

// ObjectStore is the outbound object store contract, satisfied by
// pkg/storage.Client.
type ObjectStore interface {
	List(ctx context.Context) ([]string, error)
	SignedURL(ctx context.Context, objectPath string) (string, error)
}
