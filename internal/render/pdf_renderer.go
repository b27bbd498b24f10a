// Package render turns a markdown deal report into a print-quality PDF via
// headless Chromium. It is an operator convenience; the engine never
// depends on it.
package render

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joelkehle/dealintel/internal/dealscreen"
)

type PDFRenderer struct {
	chromePath string
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{chromePath: detectChromePath()}
}

// Render accepts either a dealscreen Result JSON payload or plain markdown
// and produces the PDF bytes.
func (r *PDFRenderer) Render(ctx context.Context, input []byte) ([]byte, error) {
	htmlDoc, err := buildHTML(input)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

// buildHTML resolves the input (Result JSON or raw markdown), converts the
// markdown to HTML, and wraps it in the print stylesheet.
func buildHTML(input []byte) (string, error) {
	markdown := string(input)
	badgeHTML := ""
	metaHTML := ""

	var res dealscreen.Result
	if json.Unmarshal(input, &res) == nil && len(res.Coverage.Sections) > 0 {
		markdown = dealscreen.BuildReportMarkdown(res)
		badgeHTML = buildBadgeHTML(res)
		metaHTML = buildMetaHTML(res)
	}

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Deal Report</title>" +
		"<style>" + printCSS + "</style></head><body>" +
		"<div class='pdf-wrap'><section class='report-viewer'><div class='report-header'>" +
		"<div class='report-meta'>" + metaHTML + "</div>" +
		"<div class='report-badges'>" + badgeHTML + "</div>" +
		"</div><div class='report-html'>" + content.String() + "</div></section></div>" +
		"</body></html>", nil
}

const printCSS = "html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}" +
	"body{background:#fff;font-family:Georgia,serif;color:#1c1917;padding:0.6rem;}" +
	".pdf-wrap{max-width:1000px;margin:0 auto;}" +
	".report-badges span{background:#fef3c7;color:#78350f;border:1px solid #fcd34d;border-radius:4px;padding:2px 8px;margin-right:6px;font-size:0.8rem;}" +
	".report-meta{color:#44403c;font-size:0.85rem;}" +
	".report-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;}" +
	".report-html th,.report-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}" +
	".report-html thead th{background:#f1f5f9;font-weight:700;}" +
	"@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .pdf-wrap{max-width:none;} }"

func buildMetaHTML(res dealscreen.Result) string {
	var out strings.Builder
	if name := strings.TrimSpace(res.DealOverview.DealName); name != "" {
		out.WriteString("<div><strong>Deal:</strong> " + html.EscapeString(name) + "</div>")
	}
	out.WriteString("<div><strong>Policy:</strong> " + html.EscapeString(res.Coverage.PolicyID) + "</div>")
	if res.UpdateReport != nil && !res.UpdateReport.GeneratedAt.IsZero() {
		out.WriteString("<div><strong>Date:</strong> " + html.EscapeString(res.UpdateReport.GeneratedAt.Format("January 2, 2006")) + "</div>")
	}
	return out.String()
}

func buildBadgeHTML(res dealscreen.Result) string {
	var out strings.Builder
	out.WriteString("<span>" + html.EscapeString(string(res.DecisionSummary.Recommendation)) + "</span>")
	out.WriteString(fmt.Sprintf("<span>Score %d/100</span>", res.DecisionSummary.Score))
	out.WriteString("<span>Confidence: " + html.EscapeString(string(res.DecisionSummary.Confidence)) + "</span>")
	return out.String()
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
