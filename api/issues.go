package api

import (
	"errors"

	"github.com/lyraproj/issue/issue"
)

const (
	AbsoluteRelativePath = `HOMELOCATOR_ABSOLUTE_RELATIVE_PATH`
	FilesystemFailure    = `HOMELOCATOR_FILESYSTEM_FAILURE`
	MalformedURI         = `HOMELOCATOR_MALFORMED_URI`
	MissingArgument      = `HOMELOCATOR_MISSING_ARGUMENT`
	ModuleNotFound       = `HOMELOCATOR_MODULE_NOT_FOUND`
	NonExistingDirectory = `HOMELOCATOR_NON_EXISTING_DIRECTORY`
	NotADirectory        = `HOMELOCATOR_NOT_A_DIRECTORY`
	RelativePathNotSet   = `HOMELOCATOR_RELATIVE_PATH_NOT_SET`
	UnknownDeployment    = `HOMELOCATOR_UNKNOWN_DEPLOYMENT`
)

// Kind groups issue codes into the failure categories a caller can act upon.
type Kind int

const (
	// KindUnknown is returned for nil errors and errors not produced by this module
	KindUnknown = Kind(iota)

	// KindInvalidArgument covers bad arguments and resolved paths that are not existing directories
	KindInvalidArgument

	// KindRelativePathNotSet is returned when a relative path is requested before it has been set
	KindRelativePathNotSet

	// KindLocatorFailure means that the location of the reference module itself could not be determined
	KindLocatorFailure
)

var kinds = map[issue.Code]Kind{
	AbsoluteRelativePath: KindInvalidArgument,
	FilesystemFailure:    KindLocatorFailure,
	MalformedURI:         KindLocatorFailure,
	MissingArgument:      KindInvalidArgument,
	ModuleNotFound:       KindLocatorFailure,
	NonExistingDirectory: KindInvalidArgument,
	NotADirectory:        KindInvalidArgument,
	RelativePathNotSet:   KindRelativePathNotSet,
	UnknownDeployment:    KindInvalidArgument,
}

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return `InvalidArgument`
	case KindRelativePathNotSet:
		return `RelativePathNotSet`
	case KindLocatorFailure:
		return `LocatorFailure`
	default:
		return `Unknown`
	}
}

// Error creates an error reported with the given code and arguments
func Error(code issue.Code, args issue.H) issue.Reported {
	return issue.NewReported(code, issue.SeverityError, args, 1)
}

// CodeOf returns the issue code of the given error, or an empty code if the error
// wasn't reported using an issue.
func CodeOf(err error) issue.Code {
	var r issue.Reported
	if errors.As(err, &r) {
		return r.Code()
	}
	return ``
}

// KindOf returns the Kind of the given error
func KindOf(err error) Kind {
	if k, ok := kinds[CodeOf(err)]; ok {
		return k
	}
	return KindUnknown
}

func init() {
	issue.Hard(AbsoluteRelativePath, `The parameter %{name} must be a relative path: %{path}`)

	issue.Hard(FilesystemFailure, `Unable to examine '%{path}': %{detail}`)

	issue.Hard(MalformedURI, `Could not locate module from URI '%{uri}': %{detail}`)

	issue.Hard(MissingArgument, `The parameter %{name} can not be empty`)

	issue.Hard(ModuleNotFound, `Could not find own module '%{resource}'`)

	issue.Hard(NonExistingDirectory, `Relative path pointing to non-existing directory: %{path}`)

	issue.Hard(NotADirectory, `Relative path is not a directory: %{path}`)

	issue.Hard(RelativePathNotSet, `Relative path not set`)

	issue.Hard(UnknownDeployment, `Unknown deployment '%{name}'. Expected one of auto, archive, or loose`)
}
