package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/entityreader/compiler/gen"
	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/reader/schemafile"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		out    string
		pkg    string
		header string
	)
	cmd := &cobra.Command{
		Use:     "gen",
		Short:   "Generate Go code registering the descriptors statically",
		Args:    usageArgs(cobra.NoArgs),
		PreRunE: requireFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := schemafile.Load(a.cfg.GetString(cfgKeySchema))
			if err != nil {
				return err
			}
			reg, err := a.registry(cmd, f, nil)
			if err != nil {
				return err
			}
			opts := []gen.Option{gen.WithWorkers(a.cfg.GetInt(cfgKeyWorkers))}
			if pkg != "" {
				opts = append(opts, gen.WithPackage(pkg))
			}
			if header != "" {
				opts = append(opts, gen.WithHeader(header))
			}
			g, err := gen.New(export.NewSnapshot(reg.All()), out, opts...)
			if err != nil {
				return err
			}
			if err := g.Generate(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("generated", "dir", out, "entities", len(reg.Entities()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "package name (default: base name of the output directory)")
	cmd.Flags().StringVar(&header, "header", "", "file header comment")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
