package ports

import (
	"context"

	"github.com/aretw0/botcmd/pkg/domain"
)

// AliasLoader provides alias definitions registered at startup.
type AliasLoader interface {
	LoadAliases(ctx context.Context) ([]domain.Alias, error)
}
