package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/starkstore/storage"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	jsonF     = "json"
	jsonUsage = "Print the report as JSON instead of a table."
)

var errNoSchema = errors.New("no schema file given (--schema)")

func LayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the static storage layout report",
		Long: `Resolves every declared variable's base address, slot count and per-field
offsets, for auditing a contract's storage layout before deployment.`,
		RunE: layout,
	}
	cmd.Flags().Bool(jsonF, false, jsonUsage)
	return cmd
}

func layout(cmd *cobra.Command, _ []string) error {
	schemaPath := config.GetString(schemaF)
	if schemaPath == "" {
		return errNoSchema
	}

	schemaFile, err := storage.LoadSchemaFile(schemaPath)
	if err != nil {
		return err
	}
	log.Debugw("Loaded schema", "path", schemaPath, "contract", schemaFile.Contract)

	report := schemaFile.Schema.Report()

	if asJSON, err := cmd.Flags().GetBool(jsonF); err != nil {
		return err
	} else if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Contract: %s\nLayout commitment: %s\n\n",
		schemaFile.Contract, report.Commitment.String())

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Name", "Type", "Keys", "Base Address", "Slots", "Offsets"})
	for _, v := range report.Variables {
		offsets := make([]string, len(v.Leaves))
		for i, leaf := range v.Leaves {
			offsets[i] = strconv.Itoa(leaf.Offset)
		}
		table.Append([]string{
			v.Name,
			v.Type,
			strconv.Itoa(v.KeyArity),
			"0x" + v.BaseAddress.Text(16),
			strconv.Itoa(v.SlotCount),
			strings.Join(offsets, " "),
		})
	}
	table.Render()
	return nil
}
