package main

import (
	"fmt"

	"github.com/mark3labs/dispatch/internal/store"
	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage the customer directory",
}

var customerAddFlags struct {
	contact string
	phone   string
	email   string
	sites   []string
}

var customerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := st.PutCustomer(ctx, store.Customer{
			Name:    args[0],
			Contact: customerAddFlags.contact,
			Phone:   customerAddFlags.phone,
			Email:   customerAddFlags.email,
			Sites:   customerAddFlags.sites,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved customer %s (%s)\n", c.Name, c.ID)
		return nil
	},
}

var customerListFlags struct {
	json bool
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		customers, err := st.ListCustomers(ctx)
		if err != nil {
			return err
		}
		if customerListFlags.json {
			return printJSON(customers)
		}

		var rows [][]string
		for _, c := range customers {
			rows = append(rows, []string{c.ID, c.Name, c.Contact, c.Phone, fmt.Sprint(len(c.Sites))})
		}
		printTable([]string{"ID", "Name", "Contact", "Phone", "Sites"}, rows)
		return nil
	},
}

var operatorCmd = &cobra.Command{
	Use:   "operator",
	Short: "Manage operator profiles",
}

var operatorAddFlags struct {
	id      string
	phone   string
	vehicle string
}

var operatorAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update an operator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := st.PutProfile(ctx, store.Profile{
			ID:      operatorAddFlags.id,
			Name:    args[0],
			Role:    store.RoleOperator,
			Phone:   operatorAddFlags.phone,
			Vehicle: operatorAddFlags.vehicle,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved operator %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var operatorListFlags struct {
	json bool
}

var operatorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List operators",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		operators, err := st.Operators(ctx)
		if err != nil {
			return err
		}
		if operatorListFlags.json {
			return printJSON(operators)
		}

		var rows [][]string
		for _, p := range operators {
			rows = append(rows, []string{p.ID, p.Name, p.Phone, p.Vehicle})
		}
		printTable([]string{"ID", "Name", "Phone", "Vehicle"}, rows)
		return nil
	},
}

func init() {
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
	operatorCmd.AddCommand(operatorAddCmd)
	operatorCmd.AddCommand(operatorListCmd)

	customerAddCmd.Flags().StringVar(&customerAddFlags.contact, "contact", "", "Contact person")
	customerAddCmd.Flags().StringVar(&customerAddFlags.phone, "phone", "", "Phone number")
	customerAddCmd.Flags().StringVar(&customerAddFlags.email, "email", "", "Email address")
	customerAddCmd.Flags().StringSliceVar(&customerAddFlags.sites, "site", nil, "Project site (repeatable)")
	customerListCmd.Flags().BoolVar(&customerListFlags.json, "json", false, "Output JSON")

	operatorAddCmd.Flags().StringVar(&operatorAddFlags.id, "id", "", "Profile id (default: derived from name)")
	operatorAddCmd.Flags().StringVar(&operatorAddFlags.phone, "phone", "", "Phone number")
	operatorAddCmd.Flags().StringVar(&operatorAddFlags.vehicle, "vehicle", "", "Default vehicle number")
	operatorListCmd.Flags().BoolVar(&operatorListFlags.json, "json", false, "Output JSON")
}
