package document

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/mark3labs/dispatch/internal/logger"
)

// DefaultPrintDelay is how long the print page waits for layout before
// opening the print dialog.
const DefaultPrintDelay = 500 * time.Millisecond

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}} - {{.Doc.Customer}}</title>
<style>
  @page { size: A4; margin: 15mm; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1f2937; margin: 0; }
  header { display: flex; justify-content: space-between; border-bottom: 2px solid #1e40af; padding-bottom: 8px; margin-bottom: 16px; }
  h1 { font-size: 22px; margin: 0; color: #1e40af; }
  .company { font-weight: bold; font-size: 14px; }
  .meta { font-size: 12px; color: #4b5563; }
  h2 { font-size: 14px; text-transform: uppercase; letter-spacing: .05em; color: #374151; border-bottom: 1px solid #e5e7eb; padding-bottom: 4px; margin: 18px 0 6px; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  td { padding: 4px 6px; vertical-align: top; }
  td.label { width: 40%; color: #6b7280; }
  .notes { white-space: pre-wrap; font-size: 13px; border: 1px solid #e5e7eb; padding: 8px; }
  .signatures { display: flex; justify-content: space-between; margin-top: 48px; font-size: 12px; }
  .signatures div { width: 40%; border-top: 1px solid #9ca3af; padding-top: 4px; text-align: center; }
</style>
</head>
<body>
<header>
  <div><h1>{{.Doc.Title}}</h1><div class="meta">{{.Doc.Date}}</div></div>
  <div class="company">{{.Doc.Company}}</div>
</header>
{{range .Doc.Sections}}
<h2>{{.Title}}</h2>
<table>
{{range .Rows}}  <tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}
{{if .Doc.Notes}}<h2>Notes</h2>
<div class="notes">{{.Doc.Notes}}</div>{{end}}
{{if eq .Doc.Kind "certificate"}}<div class="signatures"><div>Operator</div><div>Customer</div></div>{{end}}
<script>
  window.addEventListener("load", function () {
    setTimeout(function () { window.print(); }, {{.DelayMs}});
  });
</script>
</body>
</html>
`))

// WritePrintHTML writes a self-contained print page for doc. The page opens
// the print dialog delay after loading.
func WritePrintHTML(w io.Writer, doc Document, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	data := struct {
		Doc     Document
		DelayMs int64
	}{doc, delay.Milliseconds()}

	if err := printTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering print page: %w", err)
	}
	return nil
}

// WriteFile creates dir if needed and writes a file produced by write.
func WriteFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	logger.Debug("Wrote %s", path)
	return path, nil
}

// OpenInBrowser opens path with the platform's default handler.
func OpenInBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", abs)
	case "darwin":
		cmd = exec.Command("open", abs)
	default:
		cmd = exec.Command("xdg-open", abs)
	}
	return cmd.Start()
}
