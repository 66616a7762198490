package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/aretw0/vellum"
	"github.com/aretw0/vellum/pkg/core"
)

// resolveRoot determines the notes root for the current invocation.
// An explicit --root (or VELLUM_ROOT, or a config file entry) wins,
// then an enclosing vault found by marker, then the working directory.
func resolveRoot() (string, error) {
	if root := viper.GetString("root"); root != "" {
		return root, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if found, err := vellum.FindNotesRoot(wd); err == nil {
		return found, nil
	}
	return wd, nil
}

// openStore wires the storage adapter for one-shot commands. Commands
// that only read pass mustExist so a missing vault is an error instead
// of a silently created directory.
func openStore(ctx context.Context, mustExist bool) (core.Storage, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}

	return vellum.InitStore(ctx, root,
		vellum.WithFormat(viper.GetString("format")),
		vellum.WithMustExist(mustExist),
		vellum.WithLogger(slog.Default()),
	)
}
