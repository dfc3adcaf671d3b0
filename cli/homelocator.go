package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/lyraproj/homelocator/config"
	"github.com/lyraproj/homelocator/locator"
	"github.com/lyraproj/homelocator/util"
	"github.com/lyraproj/issue/issue"
	"github.com/spf13/cobra"
)

var helpTemplate = `Description:
  {{rpad .Long 10}}

Usage:
  {{appendIfNotPresent .UseLine "[flags]"}}{{if .HasExample}}

Examples:
  {{.Example}}{{end}}

Flags:
{{.LocalFlags.FlagUsages | trimRightSpace}}
`

var (
	logLevel   string
	configPath string
	renderAs   string
	deployment string
	separators []string
	globs      []string
	settings   *config.Settings
	logger     hclog.Logger
)

// NewCommand creates the homelocator Command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homelocator [<relative path>]",
		Short: `HomeLocator - Print the directory where the application is installed`,
		Long: `HomeLocator - Print the directory where the application is installed.
    The directory is the one holding the executable or, when running from source, the
    root of the source tree. An optional relative path is applied to that directory.`,
		Example: `homelocator ..
  homelocator --glob 'lib/*.so' ..`,
		Version: fmt.Sprintf("%v", getVersion()),
		PreRunE: initialize,
		RunE:    cmdLocate,
		Args:    cobra.MaximumNArgs(1)}

	flags := cmd.Flags()
	flags.StringVar(&logLevel, `loglevel`, ``,
		`trace/debug/info/warn/error (default error)`)
	flags.StringVar(&configPath, `config`, ``,
		`path to the settings file. Overrides <current directory>/`+config.FileName)
	flags.StringVar(&renderAs, `render-as`, string(Text),
		`s/json/yaml: Specify the output format of the results; s means plain text`)
	flags.StringVar(&deployment, `deployment`, ``,
		`auto/archive/loose: how the application is deployed (default auto)`)
	flags.StringArrayVar(&separators, `separator`, nil,
		`archive content separator, may be repeated to give candidates in order (default '!' then '$')`)
	flags.StringArrayVar(&globs, `glob`, nil,
		`list the entries below the location that match the given pattern instead of the location itself`)

	cmd.SetHelpTemplate(helpTemplate)
	return cmd
}

func initialize(cmd *cobra.Command, _ []string) error {
	var (
		s   *config.Settings
		err error
	)
	path := configPath
	if path == `` {
		path = config.FileName
		s, err = config.LoadDefault(`.`)
	} else {
		s, err = config.Load(path)
	}
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed(`deployment`) {
		s.Deployment = deployment
	}
	if flags.Changed(`separator`) {
		s.Separators = separators
	}
	if flags.Changed(`loglevel`) || s.LogLevel == `` {
		s.LogLevel = logLevel
	}
	if s.LogLevel == `` {
		s.LogLevel = `error`
	}
	settings = s

	issue.IncludeStacktrace(s.LogLevel == `debug` || s.LogLevel == `trace`)
	logger = hclog.New(&hclog.LoggerOptions{
		Name:   `homelocator`,
		Level:  hclog.LevelFromString(s.LogLevel),
		Output: cmd.ErrOrStderr(),
	})
	logger.Debug(`settings loaded`, `path`, path, `settings`, s.String())
	return nil
}

func cmdLocate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	if len(args) > 0 {
		settings.RelativePath = args[0]
	}
	cfg, err := settings.LocatorConfig(logger)
	if err != nil {
		return err
	}
	l, err := locator.New(cfg)
	if err != nil {
		return err
	}
	location, err := l.Location()
	if err != nil {
		return err
	}

	r := &Result{Location: location}
	if len(globs) > 0 {
		r.Matches = []string{}
		for _, g := range globs {
			ms, err := util.Glob(location, g)
			if err != nil {
				return fmt.Errorf(`invalid glob pattern '%s': %w`, g, err)
			}
			r.Matches = append(r.Matches, ms...)
		}
	}
	return Render(RenderName(renderAs), r, cmd.OutOrStdout())
}
