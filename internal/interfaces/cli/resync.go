package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newResyncCmd(open Opener) *cobra.Command {
	var productID string
	var all bool

	cmd := &cobra.Command{
		Use:   "resync",
		Short: "Recalcula current_stock desde la suma de los lotes",
		Example: "  stockctl resync --product 7b0c...\n" +
			"  stockctl resync --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (productID == "") == !all {
				return errors.New("indique --product <id> o --all")
			}
			resyncer, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			if productID != "" {
				n, err := resyncer.ResyncStock(cmd.Context(), productID)
				if err != nil {
					return fmt.Errorf("resincronizar %s: %w", productID, err)
				}
				fmt.Fprintf(out, "%s\t%d\n", productID, n)
				return nil
			}

			result, err := resyncer.ResyncAll(cmd.Context())
			ids := make([]string, 0, len(result))
			for id := range result {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "%s\t%d\n", id, result[id])
			}
			if err != nil {
				return fmt.Errorf("resincronización interrumpida: %w", err)
			}
			fmt.Fprintf(out, "%d productos resincronizados\n", len(ids))
			return nil
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "ID del producto a resincronizar")
	cmd.Flags().BoolVar(&all, "all", false, "resincronizar todos los productos")
	return cmd
}
