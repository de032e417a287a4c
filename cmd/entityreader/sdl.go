package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/entityreader/contrib/graphql"
	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/reader/schemafile"
)

func newSDLCmd(a *app) *cobra.Command {
	var (
		out     string
		node    bool
		scalars map[string]string
	)
	cmd := &cobra.Command{
		Use:   "sdl",
		Short: "Render a GraphQL schema for all entities",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := schemafile.Load(a.cfg.GetString(cfgKeySchema))
			if err != nil {
				return err
			}
			reg, err := a.registry(cmd, f, nil)
			if err != nil {
				return err
			}
			var opts []graphql.Option
			if node {
				opts = append(opts, graphql.WithNode())
			}
			for columnType, gqlType := range scalars {
				opts = append(opts, graphql.WithScalar(columnType, gqlType))
			}
			sdl, err := graphql.SDL(export.NewSnapshot(reg.All()), opts...)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), sdl)
				return err
			}
			return os.WriteFile(out, []byte(sdl), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the schema to a file instead of stdout")
	cmd.Flags().BoolVar(&node, "node", false, "declare the Relay Node interface")
	cmd.Flags().StringToStringVar(&scalars, "scalar", nil, "map a column type to a GraphQL type, e.g. decimal=Decimal")
	return cmd
}
