package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/dispatch/internal/document"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/hooks"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/steps"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/dispatch/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var certFlags struct {
	template string
}

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Create, convert and list delivery certificates",
}

var certNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Enter a delivery certificate from scratch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCertWizard(cmd.Context(), draft.NewCertificate(), "", false)
	},
}

var certConvertCmd = &cobra.Command{
	Use:   "convert <service-call-id>",
	Short: "Turn a service call into a delivery certificate",
	Long: `Turn a service call into a delivery certificate.

The certificate is seeded from the call and the wizard opens at the
additions step. Earlier steps can still be revisited, and the call is marked
completed once the certificate is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		call, err := st.GetServiceCall(ctx, args[0])
		cleanup()
		if err != nil {
			return err
		}
		cert := draft.FromServiceCall(call.ID, &call.ServiceCall)
		return runCertWizard(ctx, cert, steps.CertAdditions, true)
	},
}

var certListFlags struct {
	customer string
	date     string
	json     bool
}

var certListCmd = &cobra.Command{
	Use:   "list",
	Short: "List delivery certificates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		certs, err := st.ListCertificates(ctx, store.Query{
			Where: map[string]string{
				draft.FieldCustomer: certListFlags.customer,
				draft.FieldDate:     certListFlags.date,
			},
			OrderBy: draft.FieldDate,
		})
		if err != nil {
			return err
		}
		if certListFlags.json {
			return printJSON(certs)
		}

		var rows [][]string
		for _, c := range certs {
			rows = append(rows, []string{
				shortID(c.ID), c.Date, c.StartTime + "-" + c.EndTime,
				c.Customer, c.ProjectSite,
				draft.Label(draft.PumpTypes, c.PumpType), c.Quantity,
				shortID(c.ServiceCallID),
			})
		}
		printTable([]string{"ID", "Date", "Time", "Customer", "Site", "Pump", "m³", "Call"}, rows)
		return nil
	},
}

func init() {
	certCmd.AddCommand(certNewCmd)
	certCmd.AddCommand(certConvertCmd)
	certCmd.AddCommand(certListCmd)

	certCmd.PersistentFlags().StringVarP(&certFlags.template, "template", "t", "", "Markdown template for the preview step")

	certListCmd.Flags().StringVar(&certListFlags.customer, "customer", "", "Only certificates for this customer")
	certListCmd.Flags().StringVar(&certListFlags.date, "date", "", "Only certificates on this date (YYYY-MM-DD)")
	certListCmd.Flags().BoolVar(&certListFlags.json, "json", false, "Output JSON")
}

// runCertWizard drives the certificate wizard over cert and saves it. A
// converted certificate starts at initialStep with relaxed validation.
func runCertWizard(ctx context.Context, cert *draft.Certificate, initialStep string, relaxed bool) error {
	tmpl, err := document.LoadTemplate(certFlags.template)
	if err != nil {
		return err
	}

	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	customers, operators := directoryOptions(ctx, st)

	var saved *store.Certificate
	err = wizard.Run(wizard.Config{
		Title:       "Delivery Certificate",
		Tree:        steps.Certificate,
		Rules:       steps.CertificateRules,
		Draft:       cert,
		InitialStep: initialStep,
		Relaxed:     relaxed,
		Customers:   customers,
		Operators:   operators,
		Preview: func() string {
			return document.Markdown(document.ForCertificate(cert, cfg.Company), tmpl)
		},
		Save: func() error {
			var err error
			saved, err = st.SaveCertificate(ctx, "", cert)
			return err
		},
	})
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "Cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Saved delivery certificate %s\n", saved.ID)
	if doc, err := st.DocumentFor(ctx, saved.ID); err == nil {
		fmt.Printf("Filed as document %s\n", doc.ID)
	} else {
		logger.Warn("Looking up document for certificate %s: %v", saved.ID, err)
	}
	runHook(ctx, hooks.EventPostCertificate, hooks.Variables{
		ID:       saved.ID,
		Customer: saved.Customer,
		Date:     saved.Date,
	})
	return nil
}
