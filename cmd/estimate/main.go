// Command estimate prices wizard answers from the command line using the
// same tables and estimators as the API.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/northridge/backend/internal/estimate"
	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/pricing"
	"github.com/northridge/backend/internal/report"
	"github.com/northridge/backend/internal/wizard"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var tablesPath string

	root := &cobra.Command{
		Use:          "estimate",
		Short:        "Price construction projects from wizard answers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&tablesPath, "tables", os.Getenv("PRICING_TABLES_PATH"), "YAML pricing overrides")

	load := func() (*pricing.Tables, error) {
		return pricing.LoadTables(tablesPath)
	}

	root.AddCommand(
		newComputeCmd(load),
		newLocationCmd(load),
		newStepsCmd(),
		newTablesCmd(load),
	)
	return root
}

type tablesLoader func() (*pricing.Tables, error)

func newComputeCmd(load tablesLoader) *cobra.Command {
	var statePath, format string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute an estimate from a YAML or JSON wizard state",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := load()
			if err != nil {
				return err
			}
			state, err := readState(cmd.InOrStdin(), statePath)
			if err != nil {
				return err
			}

			res, ok, err := estimate.New(tables).Compute(state)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("projectType is required")
			}
			if !tables.Served(state.ZipCode) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: zip %q is outside the service area, priced at %s\n", state.ZipCode, res.TierName)
			}
			return writeResult(cmd.OutOrStdout(), format, state, res)
		},
	}
	cmd.Flags().StringVarP(&statePath, "state", "s", "-", "wizard state file, - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or md")
	return cmd
}

func readState(stdin io.Reader, path string) (model.WizardState, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.WizardState{}, fmt.Errorf("read state: %w", err)
	}

	var state model.WizardState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return model.WizardState{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}

func writeResult(w io.Writer, format string, state model.WizardState, res *model.EstimateResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "md", "markdown":
		_, err := io.WriteString(w, report.Markdown(&model.SavedEstimate{State: state, Result: *res}))
		return err
	case "text", "":
		fmt.Fprintf(w, "%s in %s (%s)\n", res.ProjectLabel, res.LocationName, res.TierName)
		fmt.Fprintf(w, "Total: %s\n", report.Money(res.Total))
		fmt.Fprintf(w, "Rate:  %s\n", report.PerUnit(res))
		for _, li := range res.Breakdown {
			fmt.Fprintf(w, "  %-24s %12s\n", li.Name, report.Money(li.Value))
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func newLocationCmd(load tablesLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "location <zip>",
		Short: "Resolve a zip code to its market tier and display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := load()
			if err != nil {
				return err
			}
			zip := args[0]
			if !pricing.IsValidZip(zip) {
				return fmt.Errorf("invalid zip %q", zip)
			}
			out := cmd.OutOrStdout()
			name := tables.ResolveLocationName(zip)
			tier, ok := tables.ResolveTier(zip)
			if !ok {
				fmt.Fprintf(out, "%s\t%s\toutside service area\n", zip, name)
				return nil
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%.2f\n", zip, name, tier.Name, tier.Multiplier)
			return nil
		},
	}
}

func newStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps <project-type>",
		Short: "List the wizard steps for a project type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt := model.ProjectType(args[0])
			if !pt.Valid() {
				return fmt.Errorf("unknown project type %q", args[0])
			}
			for i, st := range wizard.Steps(pt) {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, st)
			}
			return nil
		},
	}
}

func newTablesCmd(load tablesLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the effective pricing tables as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(tables)
		},
	}
}
