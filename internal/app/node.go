package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/archive"            //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/completion"         //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/repository"         //nolint:depguard // Wired in app layer
	adaptershell "github.com/janekdb/rug-cli/internal/adapters/shell" //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/adapters/terminal"           //nolint:depguard // Wired in app layer
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/janekdb/rug-cli/internal/engine/commands"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/janekdb/rug-cli/internal/engine/environment"
	"github.com/janekdb/rug-cli/internal/engine/pipeline"
	"github.com/janekdb/rug-cli/internal/engine/resolver"
	"github.com/janekdb/rug-cli/internal/engine/shell"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
	// RegistryNodeID is the unique identifier for the command registry Graft node.
	RegistryNodeID graft.ID = "app.registry"
	// DispatcherNodeID is the unique identifier for the dispatcher Graft node.
	DispatcherNodeID graft.ID = "app.dispatcher"
)

func init() {
	graft.Register(graft.Node[*dispatcher.Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			repository.NodeID,
			archive.ReaderNodeID,
			adaptershell.NodeID,
			telemetry.NodeID,
			cas.NodeID,
		},
		Run: runRegistryNode,
	})

	graft.Register(graft.Node[*dispatcher.Dispatcher]{
		ID:        DispatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			RegistryNodeID,
			resolver.NodeID,
			pipeline.NodeID,
			archive.ReaderNodeID,
			archive.LoaderNodeID,
			environment.NodeID,
			completion.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runDispatcherNode,
	})

	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			RegistryNodeID,
			DispatcherNodeID,
			terminal.NodeID,
			adaptershell.NodeID,
			completion.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

func runRegistryNode(ctx context.Context) (*dispatcher.Registry, error) {
	repo, err := graft.Dep[ports.Repository](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.ArchiveReader](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	caches, err := graft.Dep[ports.CacheFactory](ctx)
	if err != nil {
		return nil, err
	}

	return dispatcher.NewRegistry(commands.All(commands.Deps{
		Repository: repo,
		Reader:     reader,
		Runner:     runner,
		Telemetry:  tel,
		Caches:     caches,
	})...)
}

func runDispatcherNode(ctx context.Context) (*dispatcher.Dispatcher, error) {
	registry, err := graft.Dep[*dispatcher.Registry](ctx)
	if err != nil {
		return nil, err
	}
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.ArchiveReader](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.UnitLoader](ctx)
	if err != nil {
		return nil, err
	}
	envs, err := graft.Dep[ports.EnvironmentBuilder](ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := graft.Dep[*completion.Catalog](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return dispatcher.New(dispatcher.Components{
		Registry:     registry,
		Resolver:     res,
		Compiler:     pipe,
		Reader:       reader,
		Environments: envs,
		Loader:       loader,
		Catalog:      catalog,
		Telemetry:    tel,
		Logger:       log,
		Settings:     settings,
	}, nil, nil), nil
}

func runAppNode(ctx context.Context) (*App, error) {
	registry, err := graft.Dep[*dispatcher.Registry](ctx)
	if err != nil {
		return nil, err
	}
	d, err := graft.Dep[*dispatcher.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.LineReader](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := graft.Dep[*completion.Catalog](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	catalog.SetCommands(registry.Names())
	loop := shell.New(reader, d, runner, catalog, log, nil)
	return New(registry, d, loop, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      app,
		Logger:   log,
		Settings: settings,
	}, nil
}
