package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"

	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/variable_plots/categorical"
	"github.com/pivolan/variable_plots/domain/models"
	"github.com/pivolan/variable_plots/plot"
)

const reportWorkers = 4

// VariableReport is everything produced for one categorical variable.
type VariableReport struct {
	Variable string
	Spec     models.ChartSpec
	Summary  models.SummaryTable
	BarPNG   []byte
	TracePNG []byte
	PageHTML []byte
}

// buildVariableReport runs the aggregation pipeline for one variable
// and renders its charts. Chart rendering failures are tolerated (an
// empty period can leave nothing to draw); aggregation failures are
// not.
func buildVariableReport(rows []map[string]interface{}, v models.VariableSpec, topK int, normalizeBy models.NormalizeMode) (*VariableReport, error) {
	spec, summary, err := categorical.BuildCategoricalReport(rows, v.CategoryField, v.TimeField, v.WeightField, topK, normalizeBy)
	if err != nil {
		return nil, err
	}

	report := &VariableReport{
		Variable: v.CategoryField,
		Spec:     spec,
		Summary:  summary,
	}
	if png, err := plot.DrawCategoryBar(spec.Bar); err == nil {
		report.BarPNG = png
	} else {
		log.Printf("bar chart for %s: %v", v.CategoryField, err)
	}
	if png, err := plot.DrawRateTraces(spec.Traces); err == nil {
		report.TracePNG = png
	} else {
		log.Printf("trace chart for %s: %v", v.CategoryField, err)
	}

	page := &bytes.Buffer{}
	if err := plot.RenderCompositePage(spec, page); err != nil {
		log.Printf("composite page for %s: %v", v.CategoryField, err)
	} else {
		report.PageHTML = page.Bytes()
	}
	return report, nil
}

// runReports builds one report per variable. Variables are independent
// of each other, so they are fanned out over a small worker pool.
func runReports(source RowSource, topK int, normalizeBy models.NormalizeMode) ([]*VariableReport, error) {
	variables, err := source.Variables()
	if err != nil {
		return nil, err
	}

	jobs := make(chan models.VariableSpec)
	results := make(chan *VariableReport, len(variables))
	wg := sync.WaitGroup{}
	for w := 0; w < reportWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range jobs {
				rows, err := source.Rows(v)
				if err != nil {
					log.Printf("rows for %s: %v", v.CategoryField, err)
					continue
				}
				report, err := buildVariableReport(rows, v, topK, normalizeBy)
				if err != nil {
					// Degenerate variables are skipped, not fatal: one
					// empty column must not abort the whole report.
					log.Printf("report for %s: %v", v.CategoryField, err)
					continue
				}
				results <- report
			}
		}()
	}
	for _, v := range variables {
		jobs <- v
	}
	close(jobs)
	wg.Wait()
	close(results)

	reports := []*VariableReport{}
	for r := range results {
		reports = append(reports, r)
	}
	return reports, nil
}

// writeReportFiles dumps every report under a fresh uuid-named run
// directory and returns its path.
func writeReportFiles(outDir string, reports []*VariableReport) (string, error) {
	runDir := filepath.Join(outDir, uuid.NewV4().String())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	for _, report := range reports {
		base := filepath.Join(runDir, sanitizeName(report.Variable))
		if len(report.BarPNG) > 0 {
			if err := os.WriteFile(base+"_bar.png", report.BarPNG, 0644); err != nil {
				return "", err
			}
		}
		if len(report.TracePNG) > 0 {
			if err := os.WriteFile(base+"_rates.png", report.TracePNG, 0644); err != nil {
				return "", err
			}
		}
		if len(report.PageHTML) > 0 {
			if err := os.WriteFile(base+".html", report.PageHTML, 0644); err != nil {
				return "", err
			}
		}
		summary := GenerateSummaryMarkdown(report.Summary)
		if err := os.WriteFile(base+"_summary.md", []byte(summary), 0644); err != nil {
			return "", err
		}
	}
	return runDir, nil
}
