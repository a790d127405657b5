package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/ports"
	"github.com/aretw0/loam"
)

// Loader reads command aliases from a Loam document repository, one alias
// per markdown (or JSON/YAML) document.
type Loader struct {
	Repo *loam.TypedRepository[AliasMetadata]
}

var _ ports.AliasLoader = (*Loader)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[AliasMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers consistent across serializers; read-only
	// mode stops Loam from sandboxing a directory we never write to.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[AliasMetadata](repo)), nil
}

// LoadAliases implements ports.AliasLoader.
func (l *Loader) LoadAliases(ctx context.Context) ([]domain.Alias, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	aliases := make([]domain.Alias, 0, len(docs))
	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = filepath.Base(trimExtension(doc.ID))
		}
		if doc.Data.Command == "" {
			return nil, fmt.Errorf("alias %q in %s has no command", name, doc.ID)
		}
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: alias '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID

		desc := doc.Data.Description
		if desc == "" {
			// List omits the body, so fetch the full document.
			full, err := l.Repo.Get(ctx, doc.ID)
			if err != nil {
				return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
			}
			desc = firstLine(full.Content)
		}
		aliases = append(aliases, domain.Alias{
			Name:        name,
			Command:     doc.Data.Command,
			Description: desc,
			Source:      "loam:" + doc.ID,
		})
	}
	return aliases, nil
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return strings.TrimLeft(line, "# ")
		}
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
