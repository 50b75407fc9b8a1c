package main

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"expoadmin/form"
	"expoadmin/gcal"
)

var prefill []string

var formCmd = &cobra.Command{
	Use:       "form KIND",
	Short:     "Fill in a form and print the values as JSON",
	Long:      "Opens an exhibitor, event, user or trade hall form. The saved values are printed as JSON; leaving the form exits with status 1.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: form.Kinds(),
	RunE:      runForm,
}

func init() {
	formCmd.Flags().StringArrayVar(&prefill, "set", nil, "prefill a field, as key=value (repeatable)")
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, args []string) error {
	def, ok := form.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown form %q, want one of %s", args[0], strings.Join(form.Kinds(), ", "))
	}
	values, err := parseValues(prefill)
	if err != nil {
		return err
	}

	cfg, err := gcal.LoadConfig()
	if err != nil {
		return err
	}
	dicts, err := loadDictionaries(cfg)
	if err != nil {
		return err
	}

	sources := form.Sources{Dict: dicts}
	if usesCalendars(def) {
		// Authorization may prompt, so it runs before the program owns the terminal.
		srv, err := gcal.GetCalendarService()
		if err != nil {
			logger.LogError(err)
		} else {
			sources.Calendars = gcal.Source(srv, cfg.CalendarIDs)
		}
	}

	m := form.New(def, form.Config{Sources: sources, Logger: logger, Values: values})
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	if err := m.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(m.Values())
}

func usesCalendars(def form.Definition) bool {
	for _, f := range def.Fields {
		if f.Source == "calendars" {
			return true
		}
	}
	return false
}

func parseValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", p)
		}
		values[k] = v
	}
	return values, nil
}
