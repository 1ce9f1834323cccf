// cmd/tools/catalog-generator/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"project-tracker/internal/common/validation"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"
)

// CategorySummary holds one row of the summary report.
type CategorySummary struct {
	Category      string
	Projects      int
	Active        int
	ContractTotal int64
	PaymentTotal  int64
}

type Report struct {
	Seed       int64
	Projects   int
	Violations []string
	Categories []CategorySummary
}

const summaryTemplate = `Catalog seed {{ .Seed }}: {{ .Projects }} projects
{{ range .Categories }}  {{ printf "%-12s" .Category }} {{ printf "%3d" .Projects }} projects  {{ printf "%3d" .Active }} active  contract {{ .ContractTotal }}万元  received {{ .PaymentTotal }}万元
{{ end }}{{ if .Violations }}
{{ len .Violations }} violation(s):
{{ range .Violations }}  - {{ . }}
{{ end }}{{ else }}
No violations.
{{ end }}`

func main() {
	seed := flag.Int64("seed", 0, "Generator seed (0 = time based)")
	minPer := flag.Int("min", 6, "Minimum projects per category")
	maxPer := flag.Int("max", 14, "Maximum projects per category")
	parallel := flag.Bool("parallel", false, "Assemble categories concurrently")
	category := flag.String("category", "", "Only emit this category (e.g. 发电工程公司)")
	format := flag.String("format", "summary", "Output format: summary or json")
	output := flag.String("out", "", "Output file (default stdout)")
	strict := flag.Bool("strict", false, "Exit non-zero when any record violates a consistency rule")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *category != "" && !models.ProjectCategory(*category).Valid() {
		fmt.Printf("Unknown category %q\n", *category)
		os.Exit(1)
	}

	gen := generator.New(generator.NewSource(*seed))
	projects, err := gen.BuildCatalog(context.Background(), generator.CatalogOptions{
		MinPerCategory: *minPer,
		MaxPerCategory: *maxPer,
		Parallel:       *parallel,
	})
	if err != nil {
		fmt.Printf("Error building catalog: %v\n", err)
		os.Exit(1)
	}

	if *category != "" {
		projects = filterCategory(projects, models.ProjectCategory(*category))
	}
	report := buildReport(*seed, projects)

	var out io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(projects)
	case "summary":
		err = renderSummary(out, report)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(1)
	}

	if *strict && len(report.Violations) > 0 {
		os.Exit(2)
	}
}

func filterCategory(projects []models.Project, category models.ProjectCategory) []models.Project {
	var out []models.Project
	for _, p := range projects {
		if p.Type == category {
			out = append(out, p)
		}
	}
	return out
}

// buildReport aggregates per-category totals and collects every rule and
// schema violation, prefixed with the project ID.
func buildReport(seed int64, projects []models.Project) Report {
	r := Report{Seed: seed, Projects: len(projects)}
	rows := map[models.ProjectCategory]*CategorySummary{}

	for _, p := range projects {
		row, ok := rows[p.Type]
		if !ok {
			row = &CategorySummary{Category: p.Type.ShortName()}
			rows[p.Type] = row
		}
		row.Projects++
		if p.IsActive() {
			row.Active++
		}
		row.ContractTotal += p.ContractValue
		row.PaymentTotal += p.PaymentReceived

		problems := generator.Validate(p)
		if res, err := validation.ProjectSchema.Validate(p); err != nil {
			problems = append(problems, err.Error())
		} else if !res.Valid {
			problems = append(problems, res.GetErrorMessages()...)
		}
		for _, v := range problems {
			r.Violations = append(r.Violations, p.ID+": "+v)
		}
	}

	for _, c := range models.AllCategories() {
		if row, ok := rows[c]; ok {
			r.Categories = append(r.Categories, *row)
		}
	}
	return r
}

func renderSummary(w io.Writer, r Report) error {
	tmpl, err := template.New("summary").Parse(summaryTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
