package migrate

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/unitrie/cli/cmdargs"
	"github.com/nspcc-dev/unitrie/pkg/core/mpt"
	"github.com/nspcc-dev/unitrie/pkg/core/repository"
	"github.com/nspcc-dev/unitrie/pkg/core/state"
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/migration"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/urfave/cli"
	"golang.org/x/exp/slices"
)

// AccountEntry is a dumped account.
type AccountEntry struct {
	// Key is an address or its hash depending on the trie mode.
	Key        string `json:"key"`
	Nonce      uint64 `json:"nonce"`
	Balance    string `json:"balance"`
	Hibernated bool   `json:"hibernated,omitempty"`
	CodeSize   int    `json:"codesize,omitempty"`
	Storage    bool   `json:"storage,omitempty"`
}

// DumpAccounts collects all accounts of the Unitrie in ascending key order.
func DumpAccounts(tr *mpt.Trie) ([]AccountEntry, error) {
	keys, err := repository.New(tr, nil).GetAccountsKeys()
	if err != nil {
		return nil, err
	}
	res := make([]AccountEntry, 0, len(keys))
	for _, k := range keys {
		accKey := append([]byte{repository.DomainPrefix}, k...)
		data, err := tr.Get(accKey)
		if err != nil {
			return nil, fmt.Errorf("account %x: %w", k, err)
		}
		acc, err := state.DecodeAccount(data)
		if err != nil {
			return nil, fmt.Errorf("account %x: %w", k, err)
		}
		e := AccountEntry{
			Key:        hex.EncodeToString(k),
			Nonce:      acc.Nonce,
			Balance:    acc.Balance.ToBig().String(),
			Hibernated: acc.IsHibernated(),
		}
		e.CodeSize, err = optionalLength(tr, append(slices.Clone(accKey), repository.CodePrefix))
		if err != nil {
			return nil, err
		}
		marker, err := optionalLength(tr, append(slices.Clone(accKey), repository.StoragePrefix))
		if err != nil {
			return nil, err
		}
		e.Storage = marker != 0
		res = append(res, e)
	}
	return res, nil
}

func optionalLength(tr *mpt.Trie, key []byte) (int, error) {
	n, err := tr.GetValueLength(key)
	if errors.Is(err, mpt.ErrNotFound) {
		return 0, nil
	}
	return n, err
}

func dump(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dest, err := storage.NewStore(dbConfig(ctx, "db", cfg, true))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = dest.Close() }()

	var root util.Uint256
	if s := ctx.String("root"); len(s) != 0 {
		root, err = cmdargs.ParseRoot(s)
	} else {
		_, root, err = migration.Progress(dest)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// Key mode is taken from the stored root.
	tr, err := mpt.NewTrie(mpt.NewTrieStore(dest, mpt.Unitrie), cfg.Migration.Secure).GetSnapshotTo(root)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("can't load root %s: %w", root.StringBE(), err), 1)
	}
	accounts, err := DumpAccounts(tr)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(accounts); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}
