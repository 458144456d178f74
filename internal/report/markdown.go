// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// markdownTmpl renders the full human-facing report.
var markdownTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(`# Narrative Report

Generated: {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}
Period: {{.Period}}
Run: {{.RunID}}

| # | Narrative | Stage | Score | Confidence |
|---|-----------|-------|-------|------------|
{{- range $i, $n := .Narratives}}
| {{inc $i}} | {{$n.Name}} | {{$n.Stage}} | {{$n.Score}} | {{printf "%.2f" $n.Confidence}} |
{{- end}}
{{range $n := .Narratives}}
## {{$n.Name}}

**Stage:** {{$n.Stage}} · **Score:** {{$n.Score}}/100 · **Confidence:** {{printf "%.2f" $n.Confidence}}

{{$n.Explanation}}

### Social signal

{{if gt $n.Signals.Social.PostCount 0 -}}
{{$n.Signals.Social.PostCount}} posts, avg engagement {{$n.Signals.Social.AvgEngagement}}, {{$n.Signals.Social.UniqueAuthors}} unique authors.
{{- if $n.Signals.Social.KeyTerms}} Key terms: {{join $n.Signals.Social.KeyTerms}}.{{end}}
{{range $p := $n.Signals.Social.TopPosts}}
- @{{$p.Author}} ({{$p.Likes}} likes): {{$p.Text}}
{{- end}}
{{- else -}}
No social signal.
{{- end}}

### Developer signal

{{if gt $n.Signals.Developer.RepoCount 0 -}}
{{$n.Signals.Developer.RepoCount}} repositories, {{$n.Signals.Developer.TotalStars}} stars total (avg {{printf "%.1f" $n.Signals.Developer.AvgStars}}).
{{- if $n.Signals.Developer.KeyTerms}} Key terms: {{join $n.Signals.Developer.KeyTerms}}.{{end}}
{{range $r := $n.Signals.Developer.TopRepos}}
- [{{$r.Name}}]({{$r.URL}}) ({{$r.Stars}} stars){{if $r.Description}}: {{$r.Description}}{{end}}
{{- end}}
{{- else -}}
No repository signal.
{{- end}}

### Build ideas
{{range $idea := $n.Ideas}}
- **{{$idea.Title}}** ({{$idea.Difficulty}}, {{$idea.Category}}): {{$idea.Description}}
{{- end}}
{{end}}
---

## Methodology

{{.Methodology}}
`))

// WriteMarkdown renders the report to dir/narratives-<runID>.md and
// returns the path.
func WriteMarkdown(dir string, r types.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	path := filepath.Join(dir, "narratives-"+r.RunID+".md")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing markdown report: %w", err)
	}
	return path, nil
}
