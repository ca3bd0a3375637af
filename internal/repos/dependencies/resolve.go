// Package dependencies supplies production defaults for collaborators a command
// builder leaves unset, so tests can inject stubs for any subset.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/mailshift/internal/execshell"
	"github.com/temirov/mailshift/internal/gitrepo"
	"github.com/temirov/mailshift/internal/repos/discovery"
	"github.com/temirov/mailshift/internal/repos/filesystem"
	"github.com/temirov/mailshift/internal/repos/shared"
	"github.com/temirov/mailshift/internal/rewrite"
	"github.com/temirov/mailshift/internal/ui"
)

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing shared.RepositoryDiscoverer) shared.RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed
// default. Human-readable logging attaches the console command event observer.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var executorOptions []execshell.ShellExecutorOption
	if humanReadableLogging {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}
	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), executorOptions...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	if creationError != nil {
		return nil, creationError
	}
	return manager, nil
}

// ResolveRewriteEngine returns the provided engine or a git filter-repo adapter over the executor.
func ResolveRewriteEngine(existing rewrite.Engine, executor shared.GitExecutor) (rewrite.Engine, error) {
	if existing != nil {
		return existing, nil
	}
	engine, creationError := rewrite.NewFilterRepoEngine(executor)
	if creationError != nil {
		return nil, creationError
	}
	return engine, nil
}
