package resolver

import (
	"fmt"

	"TickVault/internal/model"

	"github.com/google/uuid"
)

// Resolver maps a logical identifier to the store key and transport
// backing it. The mapping is static and deterministic, and identical for
// live and historical requests: both paths read one source of truth.
type Resolver struct {
	Namespace string
}

// New creates a Resolver for the given key namespace.
func New(namespace string) *Resolver {
	return &Resolver{Namespace: namespace}
}

// Resolve returns a fresh subscription context for the identifier. The
// request kind never changes the resolved key, transport, or format.
func (r *Resolver) Resolve(identifier string, kind model.RequestKind) (model.SubscriptionContext, error) {
	if identifier == "" {
		return model.SubscriptionContext{}, fmt.Errorf("resolve: empty identifier")
	}
	if kind != model.RequestLive && kind != model.RequestHistorical {
		return model.SubscriptionContext{}, fmt.Errorf("resolve %q: unknown request kind %q", identifier, kind)
	}

	return model.SubscriptionContext{
		ID:          uuid.NewString(),
		Symbol:      identifier,
		Key:         r.Namespace + "/" + identifier,
		Transport:   model.TransportObjectStore,
		Format:      model.FormatDelimitedText,
		Granularity: model.GranularityHour,
	}, nil
}
