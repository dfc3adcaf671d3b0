package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo"
	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/homelocator/cli"
	"github.com/lyraproj/homelocator/config"
	"github.com/lyraproj/homelocator/locator"
	"github.com/lyraproj/homelocator/util"
	"github.com/lyraproj/issue/issue"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newCommand()
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var (
	logLevel         string
	addr             string
	configPath       string
	sslKey           string
	sslCert          string
	clientCA         string
	clientCertVerify bool
	port             int
	settings         *config.Settings
	logger           hclog.Logger
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: `Server - Start a HomeLocator REST server`,
		Long: `Server - Start a REST server that reports the directory where it is installed.
  Responds under the /location and /glob endpoints`,
		Version: cli.Version(),
		PreRunE: initialize,
		RunE:    startServer,
		Args:    cobra.NoArgs}

	flags := cmd.Flags()
	flags.StringVar(&logLevel, `loglevel`, `error`,
		`trace/debug/info/warn/error`)
	flags.StringVar(&configPath, `config`, ``,
		`path to the settings file. Overrides <current directory>/`+config.FileName)
	flags.StringVar(&addr, `addr`, ``, `ip address to listen on`)
	flags.StringVar(&sslKey, `ssl-key`, ``, `ssl private key`)
	flags.StringVar(&sslCert, `ssl-cert`, ``, `ssl certificate`)
	flags.StringVar(&clientCA, `ca`, ``, `certificate authority to use to verify clients`)
	flags.BoolVar(&clientCertVerify, `clientCertVerify`, false, `verify client certificate`)
	flags.IntVar(&port, `port`, 8080, `port number to listen to`)
	return cmd
}

func initialize(cmd *cobra.Command, _ []string) (err error) {
	if cmd.Flags().Changed(`config`) {
		settings, err = config.Load(configPath)
	} else {
		settings, err = config.LoadDefault(`.`)
	}
	if err != nil {
		return
	}
	if cmd.Flags().Changed(`loglevel`) || settings.LogLevel == `` {
		settings.LogLevel = logLevel
	}
	issue.IncludeStacktrace(settings.LogLevel == `debug` || settings.LogLevel == `trace`)
	logger = hclog.New(&hclog.LoggerOptions{
		Name:   `homeserver`,
		Level:  hclog.LevelFromString(settings.LogLevel),
		Output: cmd.ErrOrStderr(),
	})
	return
}

func startServer(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	e := newServer(settings, logger)
	e.HideBanner = true
	e.Logger.SetOutput(cmd.OutOrStdout())

	tlsConfig, err := makeTLSconfig()
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:      addr + ":" + strconv.Itoa(port),
		TLSConfig: tlsConfig,
	}
	logger.Info(`starting server`, `addr`, server.Addr, `tls`, tlsConfig != nil)
	return e.StartServer(server)
}

// newServer creates the echo instance that serves the RESTful service. A new Locator is created
// for each request.
func newServer(s *config.Settings, logger hclog.Logger) *echo.Echo {
	e := echo.New()

	e.GET(`/location`, func(c echo.Context) error {
		location, err := locate(s, logger, c.QueryParam(`relative`))
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(http.StatusOK, &cli.Result{Location: location})
	})

	e.GET(`/glob`, func(c echo.Context) error {
		pattern := c.QueryParam(`pattern`)
		if pattern == `` {
			return c.JSON(http.StatusBadRequest, map[string]string{`message`: `missing required parameter 'pattern'`})
		}
		location, err := locate(s, logger, c.QueryParam(`relative`))
		if err != nil {
			return reportError(c, err)
		}
		matches, err := util.Glob(location, pattern)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{`message`: fmt.Sprintf(`invalid glob pattern '%s': %s`, pattern, err)})
		}
		return c.JSON(http.StatusOK, &cli.Result{Location: location, Matches: matches})
	})
	return e
}

func locate(s *config.Settings, logger hclog.Logger, relativePath string) (string, error) {
	rs := *s
	if relativePath != `` {
		rs.RelativePath = relativePath
	}
	cfg, err := rs.LocatorConfig(logger)
	if err != nil {
		return ``, err
	}
	l, err := locator.New(cfg)
	if err != nil {
		return ``, err
	}
	return l.Location()
}

func reportError(c echo.Context, err error) error {
	switch api.KindOf(err) {
	case api.KindInvalidArgument:
		return c.JSON(http.StatusBadRequest, map[string]string{`message`: err.Error()})
	case api.KindLocatorFailure:
		return c.JSON(http.StatusInternalServerError, map[string]string{`message`: err.Error()})
	default:
		return err
	}
}
