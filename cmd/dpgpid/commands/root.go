package commands

import (
	"time"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/domain"
)

var (
	configPath string
	keyring    string
	gpgBinary  string
	apiURL     string
	timeout    time.Duration
	passphrase string
	verbose    bool

	wire *app.Wire
)

func Execute() error {
	defer func() {
		if wire != nil {
			wire.Close()
		}
	}()
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "dpgpid",
		Short:        "Map PGP ed25519 keys to did:ipid identities and publish them",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ResolveConfig(app.ToolDpgpid, configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("keyring") {
				cfg.Keyring = keyring
			}
			if flags.Changed("gpg") {
				cfg.GPG = gpgBinary
			}
			if flags.Changed("api") {
				cfg.API = apiURL
			}
			if flags.Changed("timeout") {
				if timeout <= 0 {
					return domain.Usagef("--timeout must be positive")
				}
				cfg.Timeout = timeout
			}
			cfg.Passphrase = passphrase

			if err := app.SetupLogging(cfg.LogLevel, verbose); err != nil {
				return domain.Usagef("log level: %v", err)
			}
			wire, err = app.NewWire(cfg)
			return err
		},
	}
	root.SetFlagErrorFunc(app.FlagError)

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dpgpid/dpgpid.conf)")
	pf.StringVar(&keyring, "keyring", "", "read keys from this keyring file instead of gpg")
	pf.StringVar(&gpgBinary, "gpg", "gpg", "gpg binary")
	pf.StringVar(&apiURL, "api", app.Defaults(app.ToolDpgpid).API, "IPFS node RPC address")
	pf.DurationVar(&timeout, "timeout", app.DefaultTimeout, "timeout for each IPFS call")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase to unlock the PGP key")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(listCmd(), showCmd(), publishCmd(), exportCmd(), historyCmd())
	return root
}
