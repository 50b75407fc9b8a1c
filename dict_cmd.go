package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"expoadmin/combo"
	"expoadmin/dict"
	"expoadmin/gcal"
)

var dictJSON bool

var dictCmd = &cobra.Command{
	Use:   "dict [NAME]",
	Short: "List dictionaries or the options of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := gcal.LoadConfig()
		if err != nil {
			return err
		}
		dicts, err := loadDictionaries(cfg)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return printDictionaries(cmd.OutOrStdout(), dicts)
		}
		d, ok := dicts.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown dictionary %q", args[0])
		}
		if dictJSON {
			return writeJSON(cmd.OutOrStdout(), d.Options)
		}
		return printOptions(cmd.OutOrStdout(), d.Options)
	},
}

func init() {
	dictCmd.Flags().BoolVar(&dictJSON, "json", false, "print options as JSON")
	rootCmd.AddCommand(dictCmd)
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("57"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printDictionaries(w io.Writer, dicts *dict.Set) error {
	t := newTable("NAME", "OPTIONS")
	for _, name := range dicts.Names() {
		t.Row(name, strconv.Itoa(len(dicts.Options(name))))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func printOptions(w io.Writer, options []combo.Option) error {
	if len(options) == 0 {
		_, err := fmt.Fprintln(w, "no options")
		return err
	}
	t := newTable("VALUE", "LABEL", "DESCRIPTION")
	for _, o := range options {
		t.Row(o.Key(), o.Label, o.Description)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
