package usecase

import (
	"io"
	"log/slog"

	"github.com/neighborstan/hippodrome/internal/domain"
	"github.com/neighborstan/hippodrome/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
	log         *slog.Logger
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer, log *slog.Logger) *InitWorkspace {
	return &InitWorkspace{initializer: initializer, log: orDiscard(log)}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: root}, force); err != nil {
		uc.log.Error("workspace.init.failed", "root", root, "err", err)
		return err
	}
	uc.log.Info("workspace.init", "root", root, "force", force)
	return nil
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return log
}
