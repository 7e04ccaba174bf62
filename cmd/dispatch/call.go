package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/dispatch/internal/document"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/hooks"
	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/dispatch/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Create, edit and list service calls",
}

var callNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Enter a new service call with the wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCallWizard(cmd.Context(), "", draft.NewServiceCall())
	},
}

var callEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a saved service call",
	Long: `Edit a saved service call with the wizard.

Validation is relaxed so you can move freely between steps. Before saving, a
diff of the changes is printed and must be confirmed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		saved, err := st.GetServiceCall(ctx, args[0])
		cleanup()
		if err != nil {
			return err
		}
		return runCallWizard(ctx, saved.ID, saved.ServiceCall.Clone())
	},
}

var callListFlags struct {
	date     string
	customer string
	status   string
	limit    int
	json     bool
}

var callListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		calls, err := st.ListServiceCalls(ctx, store.Query{
			Where: map[string]string{
				draft.FieldDate:     callListFlags.date,
				draft.FieldCustomer: callListFlags.customer,
				draft.FieldStatus:   callListFlags.status,
			},
			OrderBy: draft.FieldDate,
			Limit:   callListFlags.limit,
		})
		if err != nil {
			return err
		}
		if callListFlags.json {
			return printJSON(calls)
		}

		var rows [][]string
		for _, c := range calls {
			rows = append(rows, []string{
				shortID(c.ID), c.Date, c.StartTime,
				draft.Label(draft.ServiceTypes, c.ServiceType),
				c.Customer, c.ProjectSite, c.Operator, c.Status,
			})
		}
		printTable([]string{"ID", "Date", "Start", "Type", "Customer", "Site", "Operator", "Status"}, rows)
		return nil
	},
}

var callStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a service call's status",
	Long:  fmt.Sprintf("Change a service call's status. Valid statuses: %v", draft.Statuses),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := st.SetServiceCallStatus(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Service call %s is now %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	callCmd.AddCommand(callNewCmd)
	callCmd.AddCommand(callEditCmd)
	callCmd.AddCommand(callListCmd)
	callCmd.AddCommand(callStatusCmd)

	callListCmd.Flags().StringVar(&callListFlags.date, "date", "", "Only calls on this date (YYYY-MM-DD)")
	callListCmd.Flags().StringVar(&callListFlags.customer, "customer", "", "Only calls for this customer")
	callListCmd.Flags().StringVar(&callListFlags.status, "status", "", "Only calls with this status")
	callListCmd.Flags().IntVar(&callListFlags.limit, "limit", 0, "Max calls to show, 0=all")
	callListCmd.Flags().BoolVar(&callListFlags.json, "json", false, "Output JSON")
}

// runCallWizard drives the service call wizard over call and saves it under
// id (a new call when empty). Edits are saved only after the diff is
// confirmed.
func runCallWizard(ctx context.Context, id string, call *draft.ServiceCall) error {
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	customers, operators := directoryOptions(ctx, st)
	before := document.Markdown(document.ForServiceCall(call.Clone(), cfg.Company), "")

	var saved *store.ServiceCall
	save := func() error {
		var err error
		saved, err = st.SaveServiceCall(ctx, id, call)
		return err
	}

	title := "New Service Call"
	wizardSave := save
	if id != "" {
		title = "Edit Service Call"
		wizardSave = func() error { return nil }
	}

	err = wizard.Run(wizard.Config{
		Title:     title,
		Tree:      steps.ServiceCall,
		Rules:     steps.ServiceCallRules,
		Draft:     call,
		Relaxed:   id != "",
		Customers: customers,
		Operators: operators,
		Save:      wizardSave,
	})
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "Cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	if id != "" {
		after := document.Markdown(document.ForServiceCall(call, cfg.Company), "")
		diff := document.Diff(before, after)
		if diff == "" {
			fmt.Println("No changes.")
			return nil
		}
		fmt.Println(diff)
		if !confirm("Save these changes?") {
			fmt.Fprintln(os.Stderr, "Discarded.")
			return nil
		}
		if err := save(); err != nil {
			return err
		}
	}

	fmt.Printf("Saved service call %s\n", saved.ID)
	runHook(ctx, hooks.EventPostServiceCall, hooks.Variables{
		ID:       saved.ID,
		Customer: saved.Customer,
		Date:     saved.Date,
	})
	return nil
}
