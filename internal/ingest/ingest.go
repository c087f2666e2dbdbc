package ingest

import (
	"fmt"
	"log"
	"os"

	"TickVault/internal/model"
	"TickVault/internal/resolver"
	"TickVault/internal/store"
)

// Ingestor writes raw datasets into the object store before any reader
// touches them. Bytes are stored verbatim, CRLF row delimiters included.
type Ingestor struct {
	Store    store.Store
	Resolver *resolver.Resolver
}

// New creates an Ingestor.
func New(s store.Store, r *resolver.Resolver) *Ingestor {
	return &Ingestor{Store: s, Resolver: r}
}

// SaveRaw stores payload under the identifier's resolved key and
// returns that key.
func (in *Ingestor) SaveRaw(identifier string, payload []byte) (string, error) {
	ctx, err := in.Resolver.Resolve(identifier, model.RequestLive)
	if err != nil {
		return "", fmt.Errorf("save %q: %w", identifier, err)
	}
	if err := in.Store.Put(ctx.Key, payload); err != nil {
		return "", fmt.Errorf("save %q: %w", identifier, err)
	}
	log.Printf("[INFO] ingested %d bytes under %s", len(payload), ctx.Key)
	return ctx.Key, nil
}

// SaveFile reads a dataset file from disk and stores it under the
// identifier's resolved key.
func (in *Ingestor) SaveFile(identifier, path string) (string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read dataset %s: %w", path, err)
	}
	return in.SaveRaw(identifier, payload)
}
