package main

import (
	"fmt"

	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/NethermindEth/starkstore/storage"
	"github.com/spf13/cobra"
)

func AddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address NAME [KEY...]",
		Short: "Resolve the storage address of a declared variable",
		Long: `Computes sn_keccak(NAME) with every KEY (a felt, 0x-prefixed or decimal)
folded in by a Pedersen step, reduced into the valid storage address range.
The name and key count are checked against the schema's declarations.`,
		Args: cobra.MinimumNArgs(1),
		RunE: address,
	}
}

func address(cmd *cobra.Command, args []string) error {
	schemaPath := config.GetString(schemaF)
	if schemaPath == "" {
		return errNoSchema
	}

	schemaFile, err := storage.LoadSchemaFile(schemaPath)
	if err != nil {
		return err
	}

	name := args[0]
	keys := make([]*felt.Felt, len(args)-1)
	for i, arg := range args[1:] {
		key, err := new(felt.Felt).SetString(arg)
		if err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
		keys[i] = key
	}

	if v, ok := schemaFile.Schema.Variable(name); ok {
		if len(keys) != 0 {
			return fmt.Errorf("%q is not a mapping, got %d keys", name, len(keys))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "0x%s\n", v.Address().Text(16))
		return nil
	}

	m, ok := schemaFile.Schema.Mapping(name)
	if !ok {
		return fmt.Errorf("schema does not declare %q", name)
	}
	if len(keys) != m.KeyFeltCount() {
		return fmt.Errorf("%q folds %d key felts, got %d", name, m.KeyFeltCount(), len(keys))
	}

	addr, err := storage.VarAddress(name, keys...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "0x%s\n", addr.Text(16))
	return nil
}
