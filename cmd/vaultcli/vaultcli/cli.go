// Package vaultcli implements the vault command line: importing states, selecting and soft-locking
// them, releasing and settling locks, and reporting balances. Results are written as JSON.
package vaultcli

import (
	"context"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/settings"
	"github.com/bsv-blockchain/utxolock/stores/vault"
	"github.com/bsv-blockchain/utxolock/stores/vault/selection"
	"github.com/bsv-blockchain/utxolock/ulogger"
	"github.com/bsv-blockchain/utxolock/util/health"
	"github.com/bsv-blockchain/utxolock/util/tracing"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp builds the vault CLI. Command output goes to w, logs go to stderr.
func NewApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:   "vaultcli",
		Usage:  "Select, soft-lock and settle fungible states held in the vault",
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "vault store URL, overrides the vault_store setting",
			},
			&cli.StringFlag{
				Name:  "data-folder",
				Usage: "folder for sqlite files, overrides the dataFolder setting",
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv file whose settings override settings.conf, may be repeated",
			},
		},
		Before: func(c *cli.Context) error {
			if files := c.StringSlice("env-file"); len(files) > 0 {
				if err := settings.LoadEnvFile(files...); err != nil {
					return err
				}
			}

			return tracing.InitTracer(settings.NewSettings())
		},
		After: func(c *cli.Context) error {
			return tracing.ShutdownTracer(context.Background())
		},
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import unspent states from a CSV file",
				Action: importStates,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file with a tx_id,output_index,quantity,denomination,... header",
						Required: true,
					},
				},
			},
			{
				Name:   "select",
				Usage:  "Select and soft-lock states covering an amount",
				Action: selectStates,
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "amount",
						Usage:    "quantity to cover",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "denomination",
						Usage:    "asset denomination, e.g. GBP",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "lock-id",
						Usage: "requester lock id, a new one is generated when omitted",
					},
					&cli.StringFlag{
						Name:  "notary",
						Usage: "only select states governed by this notary",
					},
					&cli.StringSliceFlag{
						Name:  "issuer-key",
						Usage: "only select states issued by this key, may be repeated",
					},
					&cli.StringSliceFlag{
						Name:  "issuer-ref",
						Usage: "only select states with this hex issuer reference, may be repeated",
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "attempts before giving up on contention, overrides selection_maxAttempts",
					},
				},
			},
			{
				Name:   "release",
				Usage:  "Release soft locks",
				Action: releaseLocks,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "lock-id",
						Usage:    "lock id to release, may be repeated",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "ref",
						Usage: "only release this txid:index, may be repeated; needs a single lock id",
					},
				},
			},
			{
				Name:   "spend",
				Usage:  "Settle every state soft-locked by a lock id as spent",
				Action: spendLocked,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "lock-id",
						Usage:    "lock id whose states are settled",
						Required: true,
					},
				},
			},
			{
				Name:   "locked",
				Usage:  "List the states soft-locked by a lock id",
				Action: listLocked,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "lock-id",
						Usage:    "lock id to list",
						Required: true,
					},
				},
			},
			{
				Name:   "health",
				Usage:  "Check the store and the selection strategy it is served by",
				Action: checkHealth,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "liveness",
						Usage: "only check that the process is alive",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve health, metrics and profiling endpoints over HTTP until interrupted",
				Action: serve,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen address, overrides the vault_httpListenAddress setting",
					},
					&cli.BoolFlag{
						Name:  "profile",
						Usage: "expose the fgprof wall-clock profiler at /debug/fgprof",
					},
				},
			},
			{
				Name:   "balance",
				Usage:  "Show the unspent and unlocked balance of a denomination",
				Action: balance,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "denomination",
						Usage:    "asset denomination, e.g. GBP",
						Required: true,
					},
				},
			},
		},
	}
}

func openStore(c *cli.Context) (*vault.Store, *settings.Settings, ulogger.Logger, error) {
	tSettings := settings.NewSettings()

	if folder := c.String("data-folder"); folder != "" {
		tSettings.DataFolder = folder
	}

	if raw := c.String("store"); raw != "" {
		storeURL, err := url.Parse(raw)
		if err != nil {
			return nil, nil, nil, errors.NewConfigurationError("invalid store URL %q", raw, err)
		}

		tSettings.Vault.StoreURL = storeURL
	}

	logger := ulogger.New("vaultcli", ulogger.WithLevel(tSettings.LogLevel), ulogger.WithWriter(os.Stderr))

	store, err := vault.New(c.Context, logger, tSettings, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	return store, tSettings, logger, nil
}

func writeJSON(c *cli.Context, v interface{}) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func parseLockID(s string) (uuid.UUID, error) {
	lockID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.NewInvalidArgumentError("invalid lock id %q", s, err)
	}

	return lockID, nil
}

// parseRef reads txid:index.
func parseRef(s string) (vault.OutputRef, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return vault.OutputRef{}, errors.NewInvalidArgumentError("invalid ref %q, expected txid:index", s)
	}

	index, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return vault.OutputRef{}, errors.NewInvalidArgumentError("invalid output index in ref %q", s, err)
	}

	return vault.OutputRef{TxID: s[:i], Index: uint32(index)}, nil
}

func importStates(c *cli.Context) error {
	store, _, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(c.String("file"))
	if err != nil {
		return errors.NewInvalidArgumentError("cannot open %s", c.String("file"), err)
	}
	defer f.Close()

	n, err := store.ImportCSV(c.Context, f)
	if err != nil {
		return err
	}

	return writeJSON(c, map[string]int{"imported": n})
}

func selectStates(c *cli.Context) error {
	lockID := uuid.New()

	if s := c.String("lock-id"); s != "" {
		var err error
		if lockID, err = parseLockID(s); err != nil {
			return err
		}
	}

	criteria := &selection.Criteria{
		Target:       c.Int64("amount"),
		Denomination: c.String("denomination"),
		LockID:       lockID,
		Notary:       c.String("notary"),
		IssuerKeys:   c.StringSlice("issuer-key"),
	}

	for _, s := range c.StringSlice("issuer-ref") {
		ref, err := hex.DecodeString(s)
		if err != nil {
			return errors.NewInvalidArgumentError("issuer ref %q is not hex", s, err)
		}

		criteria.IssuerRefs = append(criteria.IssuerRefs, ref)
	}

	// reject bad input before opening the store
	if err := criteria.Validate(); err != nil {
		return err
	}

	store, tSettings, logger, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	var opts []selection.Option
	if n := c.Int("max-attempts"); n > 0 {
		opts = append(opts, selection.WithMaxAttempts(n))
	}

	result, err := selection.New(logger, tSettings, store, nil).SelectAndLock(c.Context, criteria, opts...)
	if err != nil {
		return err
	}

	return writeJSON(c, result)
}

func releaseLocks(c *cli.Context) error {
	lockIDs := make([]uuid.UUID, 0, len(c.StringSlice("lock-id")))

	for _, s := range c.StringSlice("lock-id") {
		lockID, err := parseLockID(s)
		if err != nil {
			return err
		}

		lockIDs = append(lockIDs, lockID)
	}

	refs := make([]vault.OutputRef, 0, len(c.StringSlice("ref")))

	for _, s := range c.StringSlice("ref") {
		ref, err := parseRef(s)
		if err != nil {
			return err
		}

		refs = append(refs, ref)
	}

	if len(refs) > 0 && len(lockIDs) != 1 {
		return errors.NewInvalidArgumentError("--ref needs exactly one --lock-id")
	}

	store, tSettings, logger, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	selector := selection.New(logger, tSettings, store, nil)

	if len(refs) > 0 {
		n, err := selector.ReleaseRefs(c.Context, lockIDs[0], refs)
		if err != nil {
			return err
		}

		return writeJSON(c, map[string]int64{lockIDs[0].String(): n})
	}

	released := make([]int64, len(lockIDs))

	g, gCtx := errgroup.WithContext(c.Context)

	for i, lockID := range lockIDs {
		g.Go(func() error {
			n, err := selector.Release(gCtx, lockID)
			released[i] = n

			return err
		})
	}

	if err = g.Wait(); err != nil {
		return err
	}

	out := make(map[string]int64, len(lockIDs))
	for i, lockID := range lockIDs {
		out[lockID.String()] = released[i]
	}

	return writeJSON(c, out)
}

func spendLocked(c *cli.Context) error {
	lockID, err := parseLockID(c.String("lock-id"))
	if err != nil {
		return err
	}

	store, _, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.SpendLocked(c.Context, lockID)
	if err != nil {
		return err
	}

	return writeJSON(c, map[string]int64{"spent": n})
}

func listLocked(c *cli.Context) error {
	lockID, err := parseLockID(c.String("lock-id"))
	if err != nil {
		return err
	}

	store, _, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.LockedBy(c.Context, lockID)
	if err != nil {
		return err
	}

	return writeJSON(c, records)
}

func balance(c *cli.Context) error {
	store, _, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	denomination := c.String("denomination")

	total, err := store.Balance(c.Context, denomination)
	if err != nil {
		return err
	}

	return writeJSON(c, map[string]interface{}{"denomination": denomination, "balance": total})
}

func healthChecks(store *vault.Store, selector *selection.Selector) []health.Check {
	return []health.Check{
		{Name: "vault", Check: store.Health},
		{Name: "selection", Check: func(ctx context.Context, checkLiveness bool) (int, string, error) {
			if checkLiveness {
				return http.StatusOK, "OK", nil
			}

			strategy, err := selector.Strategy(ctx)
			if err != nil {
				return http.StatusServiceUnavailable, "no selection strategy", err
			}

			return http.StatusOK, "selecting with " + strategy.Name(), nil
		}},
	}
}

func checkHealth(c *cli.Context) error {
	store, tSettings, logger, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	selector := selection.New(logger, tSettings, store, nil)

	status, body, err := health.CheckAll(c.Context, c.Bool("liveness"), healthChecks(store, selector))
	if err != nil {
		return err
	}

	if err = writeJSON(c, jsoniter.RawMessage(body)); err != nil {
		return err
	}

	if status != http.StatusOK {
		return errors.NewServiceUnavailableError("vault is unhealthy: status %d", status)
	}

	return nil
}
