package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/dispatch/internal/document"
	"github.com/mark3labs/dispatch/internal/hooks"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/spf13/cobra"
)

var docFlags struct {
	template string
	width    int
	noOpen   bool
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Preview, print and export documents",
	Long: `Preview, print and export service calls and delivery certificates.

Commands taking an <id> accept a certificate id, a service call id or a
customer document id.`,
}

var docPreviewCmd = &cobra.Command{
	Use:   "preview <id>",
	Short: "Render a document in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := document.LoadTemplate(docFlags.template)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := resolveDocument(ctx, st, args[0])
		if err != nil {
			return err
		}
		fmt.Println(document.RenderMarkdown(document.Markdown(res.doc, tmpl), docFlags.width))
		return nil
	},
}

var docPrintCmd = &cobra.Command{
	Use:   "print <id>",
	Short: "Write a print page and open it in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delay := time.Duration(cfg.PrintDelayMs) * time.Millisecond
		path, err := writeDocument(cmd.Context(), args[0], "html", func(w io.Writer, doc document.Document) error {
			return document.WritePrintHTML(w, doc, delay)
		})
		if err != nil {
			return err
		}
		if docFlags.noOpen {
			return nil
		}
		if err := document.OpenInBrowser(path); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		return nil
	},
}

var docPDFCmd = &cobra.Command{
	Use:   "pdf <id>",
	Short: "Export a document as PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := writeDocument(cmd.Context(), args[0], "pdf", document.WritePDF)
		return err
	},
}

var docListFlags struct {
	customer string
	kind     string
	json     bool
}

var docListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customer documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		docs, err := st.ListDocuments(ctx, store.Query{
			Where: map[string]string{
				"customer": docListFlags.customer,
				"kind":     docListFlags.kind,
			},
			OrderBy: "createdAt",
			Desc:    true,
		})
		if err != nil {
			return err
		}
		if docListFlags.json {
			return printJSON(docs)
		}

		var rows [][]string
		for _, d := range docs {
			rows = append(rows, []string{shortID(d.ID), d.Kind, d.Title, d.Customer, d.Path})
		}
		printTable([]string{"ID", "Kind", "Title", "Customer", "File"}, rows)
		return nil
	},
}

func init() {
	docCmd.AddCommand(docPreviewCmd)
	docCmd.AddCommand(docPrintCmd)
	docCmd.AddCommand(docPDFCmd)
	docCmd.AddCommand(docListCmd)

	docPreviewCmd.Flags().StringVarP(&docFlags.template, "template", "t", "", "Markdown template file")
	docPreviewCmd.Flags().IntVarP(&docFlags.width, "width", "w", 100, "Render width")
	docPrintCmd.Flags().BoolVar(&docFlags.noOpen, "no-open", false, "Write the page without opening a browser")

	docListCmd.Flags().StringVar(&docListFlags.customer, "customer", "", "Only documents for this customer")
	docListCmd.Flags().StringVar(&docListFlags.kind, "kind", "", "Only documents of this kind (certificate, quote, invoice)")
	docListCmd.Flags().BoolVar(&docListFlags.json, "json", false, "Output JSON")
}

// resolved is a renderable document plus the stored records it came from.
type resolved struct {
	doc    document.Document
	id     string          // certificate or service call id
	filed  *store.Document // nil for service calls
	isCert bool
}

// resolveDocument finds id as a certificate, a service call or a filed
// document, in that order.
func resolveDocument(ctx context.Context, st *store.Store, id string) (*resolved, error) {
	if d, err := st.GetDocument(ctx, id); err == nil {
		if d.RefID == "" {
			return nil, fmt.Errorf("document %s has no certificate to render", id)
		}
		id = d.RefID
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	cert, err := st.GetCertificate(ctx, id)
	if err == nil {
		res := &resolved{doc: document.ForCertificate(&cert.Certificate, cfg.Company), id: cert.ID, isCert: true}
		if filed, err := st.DocumentFor(ctx, cert.ID); err == nil {
			res.filed = filed
		}
		return res, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	call, err := st.GetServiceCall(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resolved{doc: document.ForServiceCall(&call.ServiceCall, cfg.Company), id: call.ID}, nil
}

// writeDocument renders id into the output dir, records the path on the
// filed document and runs the post hooks with the file.
func writeDocument(ctx context.Context, id, ext string, write func(io.Writer, document.Document) error) (string, error) {
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return "", err
	}
	defer cleanup()

	res, err := resolveDocument(ctx, st, id)
	if err != nil {
		return "", err
	}

	path, err := document.WriteFile(cfg.OutputDir, res.doc.FileName(ext), func(w io.Writer) error {
		return write(w, res.doc)
	})
	if err != nil {
		return "", err
	}
	fmt.Printf("Wrote %s\n", path)

	if res.filed != nil {
		if err := st.SetDocumentPath(ctx, res.filed.ID, path); err != nil {
			logger.Warn("Recording path for document %s: %v", res.filed.ID, err)
		}
	}

	event := hooks.EventPostServiceCall
	if res.isCert {
		event = hooks.EventPostCertificate
	}
	runHook(ctx, event, hooks.Variables{
		ID:       res.id,
		Customer: res.doc.Customer,
		Date:     res.doc.Date,
		File:     path,
	})
	return path, nil
}
