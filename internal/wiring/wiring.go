// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/janekdb/rug-cli/internal/adapters/archive"
	_ "github.com/janekdb/rug-cli/internal/adapters/cas"
	_ "github.com/janekdb/rug-cli/internal/adapters/compiler"
	_ "github.com/janekdb/rug-cli/internal/adapters/completion"
	_ "github.com/janekdb/rug-cli/internal/adapters/config"
	_ "github.com/janekdb/rug-cli/internal/adapters/fs"
	_ "github.com/janekdb/rug-cli/internal/adapters/logger"
	_ "github.com/janekdb/rug-cli/internal/adapters/repository"
	_ "github.com/janekdb/rug-cli/internal/adapters/shell"
	_ "github.com/janekdb/rug-cli/internal/adapters/telemetry"
	_ "github.com/janekdb/rug-cli/internal/adapters/terminal"
	// Register app and engine nodes.
	_ "github.com/janekdb/rug-cli/internal/app"
	_ "github.com/janekdb/rug-cli/internal/engine/environment"
	_ "github.com/janekdb/rug-cli/internal/engine/pipeline"
	_ "github.com/janekdb/rug-cli/internal/engine/resolver"
)
