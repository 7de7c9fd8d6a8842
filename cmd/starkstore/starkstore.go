package main

import (
	"github.com/NethermindEth/starkstore/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	schemaF    = "schema"
	verbosityF = "verbosity"
	colourF    = "colour"

	defaultSchema = ""
	defaultColour = true

	schemaUsage    = "Path to the YAML storage schema definition."
	verbosityUsage = "Verbosity of the logs. Options: debug, info, warn, error, fatal."
	colourUsage    = "Use colour in logging output."

	envPrefix = "STARKSTORE"
)

var (
	verbosity = utils.INFO
	config    *viper.Viper
	log       utils.Logger = utils.NewNopLogger()
)

func NewCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "starkstore [command]",
		Short:   "Contract storage layout and addressing tooling.",
		Version: Version,
	}

	rootCmd.PersistentFlags().String(schemaF, defaultSchema, schemaUsage)
	rootCmd.PersistentFlags().Var(&verbosity, verbosityF, verbosityUsage)
	rootCmd.PersistentFlags().Bool(colourF, defaultColour, colourUsage)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		config = v

		colour := config.GetBool(colourF)
		zapLog, err := utils.NewZapLogger(verbosity, colour)
		if err != nil {
			return err
		}
		log = zapLog
		return nil
	}

	rootCmd.AddCommand(LayoutCmd(), AddressCmd())
	return rootCmd
}
