package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/reader/schemafile"
)

func newDescribeCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "describe [entity...]",
		Short: "Classify the properties of entity types",
		Long: `Describe extracts the property descriptors of the given entity types, or of
every entity in the schema document, and prints them as a table or as a
snapshot in JSON, YAML or MessagePack.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := schemafile.Load(a.cfg.GetString(cfgKeySchema))
			if err != nil {
				return err
			}
			if err := a.describeFile(cmd, f, args); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args)
		},
	}
	addFormatFlag(cmd.Flags(), defaultFormat)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "describe again whenever the schema document changes")
	return cmd
}

func (a *app) describeFile(cmd *cobra.Command, f *schemafile.File, entities []string) error {
	reg, err := a.registry(cmd, f, entities)
	if err != nil {
		return err
	}
	return a.describe(cmd.OutOrStdout(), export.NewSnapshot(reg.All()))
}

func (a *app) describe(w io.Writer, snap *export.Snapshot) error {
	format := a.cfg.GetString(cfgKeyFormat)
	if format == defaultFormat {
		renderTable(w, snap)
		return nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return snap.Encode(w, f)
}

// watch describes the schema after every change until ctx is done. Reload
// failures are logged and watching continues.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, entities []string) error {
	path := a.cfg.GetString(cfgKeySchema)
	a.logger.Info("watching", "path", path)
	return schemafile.Watch(ctx, path, func(f *schemafile.File, err error) {
		if err == nil {
			fmt.Fprintln(cmd.OutOrStdout())
			err = a.describeFile(cmd, f, entities)
		}
		if err != nil {
			a.logger.Error("describe failed", "path", path, "error", err)
		}
	})
}
