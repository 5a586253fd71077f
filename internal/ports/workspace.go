package ports

import "github.com/neighborstan/hippodrome/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
