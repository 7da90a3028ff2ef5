// Package reportpdf renders compliance reports to PDF through a headless
// Chromium instance.
package reportpdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/legalguard/regtech/internal/compliance"
)

type Renderer struct {
	chromePath string
}

func NewRenderer() *Renderer {
	return &Renderer{chromePath: detectChromePath()}
}

// Render converts a full analysis report into a paginated PDF. The markdown
// body comes from compliance.BuildMarkdownReport; metadata and the risk badge
// are laid out above it.
func (r *Renderer) Render(ctx context.Context, report compliance.Report) ([]byte, error) {
	markdown := compliance.BuildMarkdownReport(report)
	return r.renderHTML(ctx, buildHTML(markdown, &report))
}

// RenderMarkdown renders a standalone markdown document without the report
// header block.
func (r *Renderer) RenderMarkdown(ctx context.Context, markdown string) ([]byte, error) {
	return r.renderHTML(ctx, buildHTML(markdown, nil))
}

func (r *Renderer) renderHTML(ctx context.Context, htmlDoc string) ([]byte, error) {
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

const styleCSS = `
body{font-family:Georgia,'Times New Roman',serif;color:#1c1917;line-height:1.5;font-size:11pt;}
h1{font-size:1.6rem;border-bottom:2px solid #1e3a5f;padding-bottom:0.3rem;}
h2{font-size:1.2rem;color:#1e3a5f;margin-top:1.4rem;}
h3{font-size:1rem;margin-top:1rem;}
blockquote{border-left:3px solid #a8a29e;margin:0.5rem 0;padding:0.2rem 0.8rem;color:#44403c;background:#fafaf9;}
code,pre{font-family:'SF Mono',Menlo,monospace;font-size:0.85em;background:#f5f5f4;}
pre{padding:0.6rem;border:1px solid #e7e5e4;overflow-x:auto;white-space:pre-wrap;}
table{width:100%;border-collapse:collapse;font-size:0.85rem;}
th,td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;font-weight:700;}
.report-meta{font-size:0.85rem;color:#44403c;margin-bottom:0.8rem;}
.report-meta strong{color:#1c1917;}
.risk-badge{display:inline-block;padding:0.2rem 0.7rem;border-radius:3px;font-weight:700;font-size:0.85rem;margin-bottom:0.6rem;}
.risk-low{background:#dcfce7;color:#14532d;border:1px solid #86efac;}
.risk-medium{background:#fef9c3;color:#713f12;border:1px solid #fde047;}
.risk-high{background:#ffedd5;color:#7c2d12;border:1px solid #fdba74;}
.risk-critical{background:#fee2e2;color:#7f1d1d;border:1px solid #fca5a5;}
`

func buildHTML(markdown string, report *compliance.Report) string {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		// Conversion only fails on writer errors; strings.Builder never
		// returns one. Fall back to preformatted text regardless.
		content.Reset()
		content.WriteString("<pre>" + html.EscapeString(markdown) + "</pre>")
	}
	contentHTML := applyPrintLayoutHooks(content.String())

	header := ""
	if report != nil {
		header = buildHeaderHTML(report)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Compliance Report</title>" +
		"<style>" + styleCSS + "\n" +
		"html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;} " +
		"body{background:#fff;padding:0.6rem;} " +
		`h2[data-page-break-before="true"]{break-before:page;page-break-before:always;} ` +
		"@media print{ @page{size:auto;margin:12mm;} body{padding:0;} }" +
		"</style></head><body>" +
		header + contentHTML +
		"</body></html>"
}

func buildHeaderHTML(report *compliance.Report) string {
	var out strings.Builder
	level := string(report.Risk.RiskLevel)
	if level != "" {
		out.WriteString("<div class='risk-badge risk-" + strings.ToLower(level) + "'>" +
			html.EscapeString(level+" Risk, score "+fmt.Sprintf("%d/100", report.Risk.OverallScore)) + "</div>")
	}
	out.WriteString("<div class='report-meta'>")
	out.WriteString("<div><strong>Jurisdiction:</strong> " + html.EscapeString(string(report.Result.Jurisdiction)) + "</div>")
	out.WriteString("<div><strong>Contract type:</strong> " + html.EscapeString(string(report.Metadata.ContractType)) + "</div>")
	out.WriteString("<div><strong>Generated:</strong> " + html.EscapeString(time.Now().Format("January 2, 2006 at 3:04 PM MST")) + "</div>")
	out.WriteString("</div>")
	return out.String()
}

// applyPrintLayoutHooks pushes the appendix onto its own page so the findings
// sections stay contiguous.
func applyPrintLayoutHooks(contentHTML string) string {
	reAppendix := regexp.MustCompile(`(?i)<h2([^>]*)>\s*Appendix([^<]*)</h2>`)
	return reAppendix.ReplaceAllString(contentHTML, `<h2$1 data-page-break-before="true">Appendix$2</h2>`)
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
