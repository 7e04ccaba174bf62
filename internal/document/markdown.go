package document

import (
	"fmt"
	"os"
	"strings"

	"charm.land/glamour/v2"
	"github.com/mark3labs/dispatch/internal/draft"
)

// DefaultTemplate is the markdown layout used when no custom template is
// configured.
const DefaultTemplate = `# {{title}}

**{{company}}**

| | |
|---|---|
| Customer | {{customer}} |
| Date | {{date}} |

{{sections}}
{{notes}}`

// allFields are the draft fields a template may reference as {{field}}.
var allFields = []string{
	draft.FieldDate, draft.FieldStartTime, draft.FieldServiceType, draft.FieldCustomer,
	draft.FieldProjectSite, draft.FieldHourlyBooking, draft.FieldPumpType, draft.FieldQuantity,
	draft.FieldVehicleNumber, draft.FieldOperator, draft.FieldNotes, draft.FieldStatus,
	draft.FieldEndTime, draft.FieldConcreteType, draft.FieldCompanyProvides, draft.FieldElementType,
	draft.FieldWaitingTime, draft.FieldWorkType, draft.FieldTransfers, draft.FieldAdditionalPipe,
	draft.FieldMalkoTeam, draft.FieldIncludeConcreteSupply, draft.FieldAdditionalNotes,
}

// Markdown fills tmpl (DefaultTemplate when empty) for doc.
//
// Supports the following variables:
//   - {{title}}, {{company}} - document heading
//   - {{sections}} - every section as a table
//   - {{notes}} - notes block (empty when there are none)
//   - {{<field>}} - any draft field, e.g. {{customer}} or {{pumpType}}
func Markdown(doc Document, tmpl string) string {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	replacements := map[string]string{
		"{{title}}":    doc.Title,
		"{{company}}":  doc.Company,
		"{{sections}}": formatSections(doc.Sections),
	}
	for _, field := range allFields {
		replacements["{{"+field+"}}"] = escapeCell(doc.Value(field))
	}
	// {{notes}} is the combined notes block, not the raw draft field.
	replacements["{{notes}}"] = formatNotes(doc.Notes)
	// Headline fields fall back to the document when it has no draft.
	if doc.fields == nil {
		replacements["{{customer}}"] = escapeCell(doc.Customer)
		replacements["{{date}}"] = escapeCell(doc.Date)
	}

	// One pass, so values that look like placeholders stay literal.
	pairs := make([]string, 0, 2*len(replacements))
	for placeholder, value := range replacements {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func formatSections(sections []Section) string {
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("## %s\n\n| | |\n|---|---|\n", s.Title))
		for _, r := range s.Rows {
			value := r.Value
			if value == "" {
				value = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", r.Label, escapeCell(value)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatNotes(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	return "## Notes\n\n" + notes + "\n"
}

// escapeCell keeps a value from breaking a markdown table row.
func escapeCell(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// LoadTemplate returns the template at path, or DefaultTemplate when path is
// empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return string(data), nil
}

// RenderMarkdown renders markdown for the terminal using glamour.
// Falls back to the raw markdown if rendering fails.
func RenderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Remove trailing newlines that glamour adds
	return strings.TrimRight(rendered, "\n")
}
