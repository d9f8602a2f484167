package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/totosca"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the TOSCA types and YANG lists with a registered translator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := entity.NewRegistry(a.cfg.Translation.TypeOverrides)
			if err != nil {
				return err
			}

			handlers, err := totosca.DefaultRegistry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DIRECTION\tTYPE\tLOCATION")

			for _, name := range entities.Names() {
				loc, _ := entities.Location(name)
				fmt.Fprintf(w, "yang\t%s\t%s\n", name, loc)
			}

			for _, name := range handlers.Names() {
				loc, _ := handlers.Location(name)
				fmt.Fprintf(w, "tosca\t%s\t%s\n", name, loc)
			}

			return w.Flush()
		},
	}
}
