package document

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCertificate() *draft.Certificate {
	cert := draft.NewCertificate()
	cert.Customer = "Acme Builders"
	cert.ServiceType = "concrete-pumping"
	cert.ProjectSite = "North Yard"
	cert.Date = "2026-03-02"
	cert.StartTime = "07:30"
	cert.EndTime = "11:00"
	cert.PumpType = "boom-36"
	cert.ConcreteType = "b30"
	cert.Quantity = "42"
	cert.MalkoTeam = true
	cert.Notes = "Access via gate 3"
	cert.AdditionalNotes = "Pump washed on site"
	return cert
}

func TestFileName(t *testing.T) {
	tests := []struct {
		kind, customer, date, ext string
		want                      string
	}{
		{KindCertificate, "Acme Builders Ltd.", "2026-03-02", "pdf", "certificate-acme-builders-ltd-2026-03-02.pdf"},
		{KindServiceCall, "Acme", "2026-03-02", ".html", "service-call-acme-2026-03-02.html"},
		{KindServiceCall, "", "", "pdf", "service-call.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.kind, tt.customer, tt.date, tt.ext))
		})
	}
}

func TestForCertificate(t *testing.T) {
	doc := ForCertificate(sampleCertificate(), "Malko Pumping")

	assert.Equal(t, KindCertificate, doc.Kind)
	assert.Equal(t, "Acme Builders", doc.Customer)
	require.Len(t, doc.Sections, 4)
	assert.Equal(t, "Basic Details", doc.Sections[0].Title)
	assert.Equal(t, "Access via gate 3\n\nPump washed on site", doc.Notes)

	service := doc.Sections[1].Rows
	assert.Equal(t, "Boom 36m", service[0].Value, "options render as labels")
	assert.Equal(t, "B30", service[1].Value)
	assert.Equal(t, "yes", doc.Value(draft.FieldMalkoTeam))
}

func TestMarkdown(t *testing.T) {
	doc := ForCertificate(sampleCertificate(), "Malko Pumping")

	md := Markdown(doc, "")
	assert.Contains(t, md, "# Delivery Certificate")
	assert.Contains(t, md, "**Malko Pumping**")
	assert.Contains(t, md, "| Customer | Acme Builders |")
	assert.Contains(t, md, "## Times")
	assert.Contains(t, md, "| End Time | 11:00 |")
	assert.Contains(t, md, "| Transfers | - |")
	assert.Contains(t, md, "## Notes")
	assert.Contains(t, md, "Access via gate 3")
	assert.Contains(t, md, "Pump washed on site", "additional notes are part of the notes block")

	assert.Equal(t, "## Notes\n\n"+doc.Notes+"\n", Markdown(doc, "{{notes}}"))

	custom := Markdown(doc, "{{customer}} pumped {{quantity}} m3 with {{pumpType}} {{unknown}}")
	assert.Equal(t, "Acme Builders pumped 42 m3 with boom-36 {{unknown}}", custom)
}

func TestMarkdown_ValuesStayLiteral(t *testing.T) {
	call := draft.NewServiceCall()
	call.Customer = "A | B {{notes}}"
	call.Notes = "secret"

	got := Markdown(ForServiceCall(call, ""), "{{customer}}")
	assert.Equal(t, `A \| B {{notes}}`, got)
}

func TestLoadTemplate(t *testing.T) {
	tmpl, err := LoadTemplate("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate, tmpl)

	path := filepath.Join(t.TempDir(), "t.md")
	require.NoError(t, os.WriteFile(path, []byte("{{title}}"), 0644))
	tmpl, err = LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "{{title}}", tmpl)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Title\n\nhello", 80)
	assert.Contains(t, out, "hello")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestWritePrintHTML(t *testing.T) {
	doc := ForCertificate(sampleCertificate(), "Malko <Pumping>")

	var buf bytes.Buffer
	require.NoError(t, WritePrintHTML(&buf, doc, DefaultPrintDelay))
	html := buf.String()

	assert.Contains(t, html, "<style>")
	assert.Contains(t, html, "window.print()")
	assert.Regexp(t, `\}, \s*500\s*\);`, html)
	assert.Contains(t, html, "Malko &lt;Pumping&gt;", "values are escaped")
	assert.Contains(t, html, "Pump washed on site")
	assert.Contains(t, html, `class="signatures"`)

	buf.Reset()
	require.NoError(t, WritePrintHTML(&buf, ForServiceCall(draft.NewServiceCall(), ""), -time.Second))
	assert.Regexp(t, `\}, \s*0\s*\);`, buf.String())
	assert.NotContains(t, buf.String(), `class="signatures"`)
}

func TestWritePDF(t *testing.T) {
	var small bytes.Buffer
	require.NoError(t, WritePDF(&small, ForCertificate(sampleCertificate(), "Malko Pumping")))
	assert.True(t, bytes.HasPrefix(small.Bytes(), []byte("%PDF-")))
	assert.Equal(t, 1, pageCount(small.Bytes()))

	// Long notes spill onto further pages.
	cert := sampleCertificate()
	cert.AdditionalNotes = strings.Repeat("Line of site notes.\n", 120)
	var large bytes.Buffer
	require.NoError(t, WritePDF(&large, ForCertificate(cert, "Malko Pumping")))
	assert.Greater(t, pageCount(large.Bytes()), 1)
}

func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteFile(dir, "x.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("same", "same"))

	d := Diff("a\nb\n", "a\nc")
	assert.Contains(t, d, "--- saved")
	assert.Contains(t, d, "+++ edited")
	assert.Contains(t, d, "-b")
	assert.Contains(t, d, "+c")
}
