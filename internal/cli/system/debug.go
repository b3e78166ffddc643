package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/storage"
)

type DebugCmd struct {
	DBPath  *DebugDBPathCmd  `cmd:"" help:"Show database and log file paths."`
	Keys    *DebugKeysCmd    `cmd:"" help:"List stored collections."`
	Dump    *DebugDumpCmd    `cmd:"" help:"Dump a collection as JSON."`
	History *DebugHistoryCmd `cmd:"" help:"Show previous values of a collection."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path":    ctx.Backend.GetConfigPath(),
		"dataDir": ctx.DataDir(),
		"logFile": logger.Path(),
	}
	return printJSON(output)
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Backend.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Collection key (e.g. aidant.beneficiaires)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Backend.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("collection not found: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read collection: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		// Malformed values are printed raw so they can be inspected.
		fmt.Println(string(data))
		return nil
	}
	return printJSON(v)
}

type DebugHistoryCmd struct {
	Key   string `arg:"" help:"Collection key."`
	Limit int    `short:"n" help:"Number of entries to show." default:"5"`
}

func (cmd *DebugHistoryCmd) Run(ctx *cli.Context) error {
	historian, ok := ctx.Backend.(storage.Historian)
	if !ok {
		return errors.New("this storage backend does not keep history")
	}
	entries, err := historian.History(cmd.Key, cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No history for %s\n", cmd.Key)
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %d bytes\n", e.ReplacedAt.Local().Format("2006-01-02 15:04:05"), len(e.Value))
	}
	return nil
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
