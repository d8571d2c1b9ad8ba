package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	client "github.com/lubluniky/cent-client-go"
	"github.com/lubluniky/cent-client-go/internal/config"
	"github.com/lubluniky/cent-client-go/internal/logging"
	"github.com/lubluniky/cent-client-go/internal/transport"
)

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	version    string
	configPath string

	apiURL        string
	secret        string
	hashAlgorithm string
	timeout       int
	logLevel      string

	cfg    *config.Config
	logger *logging.Logger
	client *client.Client
}

// Execute runs the centcli root command.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:          "centcli",
		Short:        "Signed command client for the real-time messaging server API",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml, .json or .jsonc)")
	pf.StringVar(&a.apiURL, "api-url", "", "server API endpoint (default http://localhost:8000/api/)")
	pf.StringVar(&a.secret, "secret", "", "secret shared with the server")
	pf.StringVar(&a.hashAlgorithm, "hash-algorithm", "", "HMAC digest algorithm (default sha256)")
	pf.IntVar(&a.timeout, "timeout", 0, "HTTP timeout in seconds")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		publishCmd(a),
		unsubscribeCmd(a),
		disconnectCmd(a),
		presenceCmd(a),
		historyCmd(a),
		channelsCmd(a),
		statsCmd(a),
		tokenCmd(a),
		channelSignCmd(a),
		bridgeCmd(a),
	)
	return root
}

// setup loads the config, applies explicitly set flags on top and builds
// the logger and API client.
func (a *app) setup(flags *pflag.FlagSet) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating flags: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Logging, a.version)
	a.client = client.NewClient(
		client.WithAPIURL(cfg.API.URL),
		client.WithSecret(cfg.API.Secret),
		client.WithHashAlgorithm(cfg.API.HashAlgorithm),
		client.WithTransport(transport.NewHTTPClient(
			transport.WithTimeout(cfg.API.TimeoutDuration()),
			transport.WithUserAgent("centcli/"+a.version),
		)),
		client.WithLogger(a.logger.With("component", "client").Logger),
	)
	return nil
}

func (a *app) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("api-url") {
		cfg.API.URL = a.apiURL
	}
	if flags.Changed("secret") {
		cfg.API.Secret = a.secret
	}
	if flags.Changed("hash-algorithm") {
		cfg.API.HashAlgorithm = a.hashAlgorithm
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = a.timeout
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
}

// printJSON writes raw indented to w, or verbatim if it does not indent.
func printJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// printValue marshals v and prints it with printJSON.
func printValue(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return printJSON(w, raw)
}

// parseData turns a command line argument into publish data: valid JSON is
// sent as-is, anything else as a string.
func parseData(arg string) any {
	if json.Valid([]byte(arg)) {
		return json.RawMessage(arg)
	}
	return arg
}
