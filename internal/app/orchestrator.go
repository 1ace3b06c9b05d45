package app

import (
	"context"
	"math/rand/v2"

	"github.com/bitefinder/server/internal/core"
	"github.com/bitefinder/server/internal/domain"
)

// Orchestrator coordinates the matching engine: it serializes every
// state-mutating operation under the group's session lock, talks to the
// persistence collaborator, and hands the committed result to the
// dispatcher. One orchestrator serves all groups.
type Orchestrator struct {
	Registry *Registry
	Sessions *core.SessionManager
	Dispatch *Dispatcher
	Groups   core.GroupStore
	Catalog  core.RestaurantStore
}

func NewOrchestrator(reg *Registry, groups core.GroupStore, catalog core.RestaurantStore) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		Sessions: core.NewSessionManager(),
		Dispatch: NewDispatcher(reg),
		Groups:   groups,
		Catalog:  catalog,
	}
}

const maxCodeAttempts = 10

func generateCode() domain.GroupCode {
	b := make([]byte, domain.CodeLength)
	for i := range b {
		b[i] = domain.CodeAlphabet[rand.IntN(len(domain.CodeAlphabet))]
	}
	return domain.GroupCode(b)
}

// uniqueCode draws codes until one is unused, giving up after a bounded
// number of collisions.
func (o *Orchestrator) uniqueCode(ctx context.Context) (domain.GroupCode, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := generateCode()
		existing, err := o.Groups.FindGroupByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", core.ErrCodeExhausted
}
