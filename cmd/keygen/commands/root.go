package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/codec"
	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/store"
	"dpgpid/internal/util/memzero"
)

type options struct {
	configPath string
	keyring    string
	gpgBinary  string
	verbose    bool

	keyType  string
	format   string
	output   string
	secret   bool
	force    bool
	input    string
	mnemonic bool
	pgp      string
}

func Execute() error {
	return newRoot(os.Stdin).Execute()
}

func newRoot(stdin io.Reader) *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:   "keygen [username] [passphrase]",
		Short: "Derive an ed25519 key and print or export it",
		Long: `Derive an ed25519 key from one credential:

  keygen alice 'secret'           scrypt credentials (username, password)
  keygen -m 'word1 ... word12'    BIP39 mnemonic (DUBP derivation)
  keygen -i key.jwk               previously encoded key file ("-" for stdin)
  keygen -g alice@example.org     PGP ed25519 key

Missing passwords and mnemonics are prompted for.`,
		SilenceUsage: true,
		Args:         app.UsageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup(cmd, &opts)
			if err != nil {
				return err
			}
			defer w.Close()
			kind, req, err := request(&opts, args, stdin)
			if err != nil {
				return err
			}
			defer memzero.Zero(req.Passphrase, req.Data)
			if s, ok := req.Secrets.(*app.StaticSecret); ok {
				defer s.Zero()
			}

			k, meta, err := w.Load(cmd.Context(), kind, req)
			if err != nil {
				return err
			}
			defer k.Zero()
			reportDetected(cmd.ErrOrStderr(), meta.Format)
			return emit(cmd, w.Config, &opts, k)
		},
	}
	root.SetFlagErrorFunc(app.FlagError)

	fs := root.Flags()
	fs.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dpgpid/keygen.conf)")
	fs.StringVar(&opts.keyring, "keyring", "", "read PGP keys from this keyring file instead of gpg")
	fs.StringVar(&opts.gpgBinary, "gpg", "gpg", "gpg binary")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	fs.StringVarP(&opts.keyType, "type", "t", "base58", "printed encoding ("+app.FormatNames()+")")
	fs.StringVarP(&opts.format, "format", "f", "pubsec", "file encoding ("+app.FormatNames()+")")
	fs.StringVarP(&opts.output, "output", "o", "", "write the key to this file instead of printing it")
	fs.BoolVarP(&opts.secret, "secret", "s", false, "print the secret key")
	fs.BoolVar(&opts.force, "force", false, "overwrite an existing output file")
	fs.StringVarP(&opts.input, "input", "i", "", "read an encoded key from this file")
	fs.BoolVarP(&opts.mnemonic, "mnemonic", "m", false, "treat the arguments as a BIP39 mnemonic")
	fs.StringVarP(&opts.pgp, "gpg-key", "g", "", "use the PGP key matching this pattern")
	return root
}

func setup(cmd *cobra.Command, opts *options) (*app.Wire, error) {
	cfg, err := app.ResolveConfig(app.ToolKeygen, opts.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("keyring") {
		cfg.Keyring = opts.keyring
	}
	if flags.Changed("gpg") {
		cfg.GPG = opts.gpgBinary
	}
	if flags.Changed("type") {
		cfg.Type = opts.keyType
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if err := app.SetupLogging(cfg.LogLevel, opts.verbose); err != nil {
		return nil, domain.Usagef("log level: %v", err)
	}
	return app.NewWire(cfg)
}

// reportDetected tells which encoding a key file was read as. Bare base58
// and base64 tokens are always taken as seeds: a raw public key has the same
// shape and would silently become a different identity.
func reportDetected(w io.Writer, format string) {
	switch format {
	case "":
	case codec.Base58.String(), codec.Base64.String():
		fmt.Fprintf(w, "Detected %s key, read as a secret seed (a bare public key cannot be told apart)\n", format)
	default:
		fmt.Fprintf(w, "Detected %s key\n", format)
	}
}

// request picks the key source from the flags and builds its request.
// Secrets left unset are filled in by the Wire.
func request(opts *options, args []string, stdin io.Reader) (domain.SourceKind, domain.Request, error) {
	chosen := 0
	for _, set := range []bool{opts.mnemonic, opts.input != "", opts.pgp != ""} {
		if set {
			chosen++
		}
	}
	if chosen > 1 {
		return "", domain.Request{}, domain.Usagef("-m, -i and -g are mutually exclusive")
	}

	switch {
	case opts.pgp != "":
		if len(args) > 1 {
			return "", domain.Request{}, domain.Usagef("-g takes at most one argument, the PGP passphrase")
		}
		req := domain.Request{Locator: opts.pgp}
		if len(args) == 1 {
			req.Secrets = app.NewStaticSecret(args[0])
		}
		return domain.SourcePGP, req, nil

	case opts.input != "":
		if len(args) > 0 {
			return "", domain.Request{}, domain.Usagef("-i takes no arguments")
		}
		req := domain.Request{Locator: opts.input}
		if opts.input == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return "", domain.Request{}, fmt.Errorf("read stdin: %w", err)
			}
			req.Data = data
		}
		return domain.SourceFile, req, nil

	case opts.mnemonic:
		var req domain.Request
		if len(args) > 0 {
			req.Passphrase = []byte(strings.Join(args, " "))
		}
		return domain.SourceMnemonic, req, nil

	default:
		if len(args) == 0 {
			return "", domain.Request{}, domain.Usagef("a username is required (or one of -m, -i, -g)")
		}
		if len(args) > 2 {
			return "", domain.Request{}, domain.Usagef("expected [username] [passphrase], got %d arguments", len(args))
		}
		req := domain.Request{Locator: args[0]}
		if len(args) == 2 {
			req.Passphrase = []byte(args[1])
		}
		return domain.SourceMnemonic, req, nil
	}
}

// emit prints the key in cfg.Type, or writes it to opts.output in cfg.Format.
func emit(cmd *cobra.Command, cfg app.Config, opts *options, k *crypto.KeyMaterial) error {
	if opts.output != "" {
		part := codec.Secret
		if !k.HasSecret() {
			part = codec.Public
		}
		f, err := app.FormatFor(cfg.Format, part)
		if err != nil {
			return err
		}
		data, err := codec.Encode(f, k, part)
		if err != nil {
			return err
		}
		defer memzero.Zero(data)
		if err := store.WriteExport(opts.output, data, part == codec.Secret, opts.force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Key written to %s (%s, %s)\n", opts.output, f, part)
		return nil
	}

	part := codec.Public
	if opts.secret {
		part = codec.Secret
	}
	f, err := app.FormatFor(cfg.Type, part)
	if err != nil {
		return err
	}
	data, err := codec.Encode(f, k, part)
	if err != nil {
		return err
	}
	defer memzero.Zero(data)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bytes.TrimRight(data, "\n"))
	return nil
}
