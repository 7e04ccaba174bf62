package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/hooks"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/dispatch/internal/tui/theme"
)

// printJSON writes v as indented JSON for scripting.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printTable writes rows under headers with the theme's header style.
func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("Nothing to show.")
		return
	}
	s := theme.Current().S()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	lipgloss.Println(t.String())
}

// directoryOptions loads customers and operators for the wizard's choice
// fields. A failure leaves the fields as free text.
func directoryOptions(ctx context.Context, st *store.Store) (customers, operators []draft.Option) {
	cs, err := st.ListCustomers(ctx)
	if err != nil {
		logger.Warn("Loading customers: %v", err)
	}
	for _, c := range cs {
		customers = append(customers, draft.Option{Value: c.Name, Label: c.Name})
	}

	ops, err := st.Operators(ctx)
	if err != nil {
		logger.Warn("Loading operators: %v", err)
	}
	for _, p := range ops {
		operators = append(operators, draft.Option{Value: p.ID, Label: p.Name})
	}
	return customers, operators
}

// runHook runs the configured hooks for event. Hook output goes to stderr so
// JSON on stdout stays parseable.
func runHook(ctx context.Context, event string, vars hooks.Variables) {
	wd, err := os.Getwd()
	if err != nil {
		logger.Warn("Hooks skipped: %v", err)
		return
	}
	output, err := hooks.Run(ctx, event, wd, vars)
	if err != nil {
		logger.Warn("Hook %s interrupted: %v", event, err)
		return
	}
	if output != "" {
		fmt.Fprintln(os.Stderr, output)
	}
}

// shortID trims a uuid for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	ok, err := draft.ParseBool(strings.TrimSpace(answer))
	return err == nil && ok
}
