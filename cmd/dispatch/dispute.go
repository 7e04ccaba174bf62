package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/dispatch/internal/tui/theme"
	"github.com/spf13/cobra"
)

var disputeCmd = &cobra.Command{
	Use:   "dispute",
	Short: "Customer disputes on filed documents",
}

var disputeOpenFlags struct {
	subject string
	message string
}

var disputeOpenCmd = &cobra.Command{
	Use:   "open <document-id>",
	Short: "Open a dispute against a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		d, err := st.OpenDispute(ctx, args[0], disputeOpenFlags.subject, disputeOpenFlags.message)
		if err != nil {
			return err
		}
		fmt.Printf("Opened dispute %s: %s\n", d.ID, d.Subject)
		return nil
	},
}

var disputeMessageCmd = &cobra.Command{
	Use:   "message <dispute-id> <text>",
	Short: "Add a message to a dispute thread",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		msg, err := st.AddDisputeMessage(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return printJSON(msg)
	},
}

var disputeThreadFlags struct {
	json bool
}

var disputeThreadCmd = &cobra.Command{
	Use:   "thread <dispute-id>",
	Short: "Show a dispute's messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		d, err := st.GetDispute(ctx, args[0])
		if err != nil {
			return err
		}
		msgs, err := st.Thread(ctx, d.ID)
		if err != nil {
			return err
		}
		if disputeThreadFlags.json {
			return printJSON(map[string]any{"dispute": d, "messages": msgs})
		}
		printThread(d, msgs)
		return nil
	},
}

var disputeResolveCmd = &cobra.Command{
	Use:   "resolve <dispute-id>",
	Short: "Close a dispute",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := st.ResolveDispute(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Dispute %s resolved\n", args[0])
		return nil
	},
}

var disputeListFlags struct {
	status string
	json   bool
}

var disputeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List disputes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		disputes, err := st.ListDisputes(ctx, store.Query{
			Where:   map[string]string{"status": disputeListFlags.status},
			OrderBy: "updatedAt",
			Desc:    true,
		})
		if err != nil {
			return err
		}
		if disputeListFlags.json {
			return printJSON(disputes)
		}

		var rows [][]string
		for _, d := range disputes {
			rows = append(rows, []string{shortID(d.ID), d.Customer, d.Subject, d.Status, d.UpdatedAt.Format("2006-01-02 15:04")})
		}
		printTable([]string{"ID", "Customer", "Subject", "Status", "Updated"}, rows)
		return nil
	},
}

var disputeShareCmd = &cobra.Command{
	Use:   "share <document-id>",
	Short: "Hand a document off to the chat command",
	Long: `Hand a document off to the chat command.

Prints a one-time key; pass it to 'dispatch dispute chat'. Keys that are not
claimed expire.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		doc, err := st.GetDocument(ctx, args[0])
		if err != nil {
			return err
		}
		c := store.ChatContext{
			DocumentID: doc.ID,
			Customer:   doc.Customer,
			Title:      doc.Title,
			Metadata:   map[string]string{"kind": doc.Kind},
		}
		if d := openDisputeFor(ctx, st, doc.ID); d != nil {
			c.DisputeID = d.ID
		}
		key, err := st.PutChatContext(ctx, c)
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	},
}

var disputeChatCmd = &cobra.Command{
	Use:   "chat <key>",
	Short: "Message a customer about a shared document",
	Long: `Message a customer about a document handed off with 'dispatch dispute share'.

Shows the dispute thread for the document, opening one if needed, then posts
each line read from stdin until EOF.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := st.TakeChatContext(ctx, args[0])
		if err != nil {
			return err
		}

		var d *store.Dispute
		if c.DisputeID != "" {
			d, err = st.GetDispute(ctx, c.DisputeID)
		} else {
			d, err = st.OpenDispute(ctx, c.DocumentID, c.Title, "")
		}
		if err != nil {
			return err
		}

		msgs, err := st.Thread(ctx, d.ID)
		if err != nil {
			return err
		}
		printThread(d, msgs)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			msg, err := st.AddDisputeMessage(ctx, d.ID, line)
			if err != nil {
				return err
			}
			printMessage(msg)
		}
		return scanner.Err()
	},
}

func init() {
	disputeCmd.AddCommand(disputeOpenCmd)
	disputeCmd.AddCommand(disputeMessageCmd)
	disputeCmd.AddCommand(disputeThreadCmd)
	disputeCmd.AddCommand(disputeResolveCmd)
	disputeCmd.AddCommand(disputeListCmd)
	disputeCmd.AddCommand(disputeShareCmd)
	disputeCmd.AddCommand(disputeChatCmd)

	disputeOpenCmd.Flags().StringVarP(&disputeOpenFlags.subject, "subject", "s", "", "Subject (default: document title)")
	disputeOpenCmd.Flags().StringVarP(&disputeOpenFlags.message, "message", "m", "", "First message of the thread")
	disputeThreadCmd.Flags().BoolVar(&disputeThreadFlags.json, "json", false, "Output JSON")
	disputeListCmd.Flags().StringVar(&disputeListFlags.status, "status", "", "Only disputes with this status (open, resolved)")
	disputeListCmd.Flags().BoolVar(&disputeListFlags.json, "json", false, "Output JSON")
}

// openDisputeFor returns the open dispute on documentID, if any.
func openDisputeFor(ctx context.Context, st *store.Store, documentID string) *store.Dispute {
	disputes, err := st.ListDisputes(ctx, store.Query{
		Where: map[string]string{"documentId": documentID, "status": store.DisputeOpen},
		Limit: 1,
	})
	if err != nil || len(disputes) == 0 {
		return nil
	}
	return disputes[0]
}

func printThread(d *store.Dispute, msgs []*store.DisputeMessage) {
	s := theme.Current().S()
	fmt.Println(s.HeaderTitle.Render(d.Subject) + "  " + s.Muted.Render(d.Customer+" • "+d.Status))
	for _, m := range msgs {
		printMessage(m)
	}
}

func printMessage(m *store.DisputeMessage) {
	s := theme.Current().S()
	fmt.Println(s.Label.Render(m.CreatedBy) + " " + s.Muted.Render(m.CreatedAt.Format("Jan 2 15:04")))
	fmt.Println(s.Text.Render(m.Body))
}
