package domain

import "go.trai.ch/zerr"

// Failure kinds. errors.Is(err, ErrCompilation) matches any *Failure of that kind.
var (
	// ErrParse is returned when the invocation arguments are malformed or name an unknown command.
	ErrParse = zerr.New("invalid invocation")

	// ErrResolution is returned when an artifact or its dependencies cannot be resolved.
	ErrResolution = zerr.New("resolution failed")

	// ErrCompilation is returned when a compiler step fails.
	ErrCompilation = zerr.New("compilation failed")

	// ErrLoad is returned when an archive cannot be loaded into a runtime environment.
	ErrLoad = zerr.New("failed to load archive")

	// ErrInvocation is returned when a command body fails.
	ErrInvocation = zerr.New("command failed")
)

var (
	// ErrInvalidCoordinate is returned when a coordinate string cannot be parsed.
	ErrInvalidCoordinate = zerr.New("invalid artifact coordinate, expected group:artifact[:version]")

	// ErrArtifactNotFound is returned when no repository holds the requested artifact.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrVersionUnsatisfiable is returned when no available version satisfies the requested one.
	ErrVersionUnsatisfiable = zerr.New("no version satisfies the request")

	// ErrTransportFailure is returned when a repository cannot be reached or returns corrupt content.
	ErrTransportFailure = zerr.New("repository transport failure")

	// ErrIncompatibleRuntime is returned when an artifact requires a runtime this tool does not provide.
	ErrIncompatibleRuntime = zerr.New("incompatible runtime version")

	// ErrInvalidRequirement is returned when a runtime requirement range cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid version requirement")

	// ErrDuplicateIdentity is returned when two units with the same group and artifact meet in one environment.
	ErrDuplicateIdentity = zerr.New("duplicate artifact identity")

	// ErrMalformedArchive is returned when archive contents do not follow the expected layout.
	ErrMalformedArchive = zerr.New("malformed archive")

	// ErrManifestNotFound is returned when a directory has no artifact manifest.
	ErrManifestNotFound = zerr.New("artifact manifest not found")

	// ErrNoArtifact is returned when a command needs an artifact and none was given or found.
	ErrNoArtifact = zerr.New("no artifact specified and no local artifact found")

	// ErrUnknownCommand is returned when the requested command is not registered.
	ErrUnknownCommand = zerr.New("unknown command")

	// ErrDuplicateCommand is returned when two commands are registered under the same name.
	ErrDuplicateCommand = zerr.New("command registered twice")

	// ErrOperationNotFound is returned when an artifact does not contain the requested operation.
	ErrOperationNotFound = zerr.New("operation not found")

	// ErrMissingParameter is returned when a required operation parameter is not supplied.
	ErrMissingParameter = zerr.New("missing required parameter")

	// ErrInvalidParameter is returned when a parameter value does not match its pattern.
	ErrInvalidParameter = zerr.New("invalid parameter value")

	// ErrUnitMissing is returned when a unit location of an environment does not exist.
	ErrUnitMissing = zerr.New("environment unit not found on disk")

	// ErrEnvironmentCreateFailed is returned when the scratch space of an environment cannot be created.
	ErrEnvironmentCreateFailed = zerr.New("failed to create execution environment")

	// ErrCacheReadFailed is returned when a compile cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read compile cache entry")

	// ErrCacheWriteFailed is returned when a compile cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write compile cache entry")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrCatalogWriteFailed is returned when the operations catalog cannot be written.
	ErrCatalogWriteFailed = zerr.New("failed to write operations catalog")

	// ErrInstallFailed is returned when an artifact cannot be installed into the local repository.
	ErrInstallFailed = zerr.New("failed to install artifact")

	// ErrProcessFailed is returned when an external process exits unsuccessfully.
	ErrProcessFailed = zerr.New("process failed")

	// ErrInterrupted is returned by a line reader when the user interrupts the current line.
	ErrInterrupted = zerr.New("interrupted")
)
