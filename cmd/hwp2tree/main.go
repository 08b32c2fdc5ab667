// Command hwp2tree extracts structured text from HWP/HWPX documents and
// writes YAML trees. It has three subcommands: extract (one file), batch
// (directory or file list), and triage (classify without extracting).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexeyco/simpletable"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/batch"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/diag"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/hwpv5"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/treeformat"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/triage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "triage":
		err = runTriage(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		diag.Failf(os.Stderr, "hwp2tree: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags] <args>

Commands:
  extract <file>            extract one document to YAML
  batch   <dir|files...>    extract many documents with a worker pool
  triage  <dir|files...>    classify files by format without extracting
`, os.Args[0])
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	output := fs.String("o", "", "output file (default stdout)")
	preview := fs.Bool("preview", false, "print table grids before the YAML")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("extract needs exactly one file")
	}
	path := fs.Arg(0)

	doc, method, err := batch.ExtractFile(context.Background(), path)
	if err != nil {
		return err
	}

	if *preview {
		for _, section := range doc.Sections {
			for _, t := range section.Tables {
				if err := treeformat.RenderTablePreview(os.Stdout, t); err != nil {
					return err
				}
				fmt.Println()
			}
		}
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	meta := treeformat.Metadata{
		Source:      path,
		Method:      method,
		ExtractedAt: time.Now().UTC(),
		Version:     treeformat.VersionString(doc.Version),
		Compressed:  doc.Compressed,
		Summary:     doc.Summary,
	}
	return treeformat.Encode(out, treeformat.Build(doc, meta))
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	workers := fs.Int("workers", 0, "worker count (default: half the CPU cores)")
	timeout := fs.Duration("timeout", batch.DefaultTimeout, "per-file timeout")
	outDir := fs.String("out-dir", "out", "directory for per-file YAML output")
	metadataFile := fs.String("metadata", "", "external metadata JSONL file")
	failedLog := fs.String("failed-log", "", "write failures as JSONL to this file")
	summary := fs.Bool("summary", false, "print a run summary table")
	recursive := fs.Bool("recursive", true, "recurse into subdirectories")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("batch needs a directory or file list")
	}

	log := diag.New(*verbose)
	proc := &batch.Processor{
		Workers: *workers,
		Timeout: *timeout,
		Log:     log,
	}

	if *metadataFile != "" {
		mapper, err := batch.LoadMetadata(*metadataFile)
		if err != nil {
			return fmt.Errorf("load metadata: %w", err)
		}
		proc.Metadata = mapper
	}

	ctx, stop := batch.WithSignalCancel(context.Background())
	defer stop()

	var result batch.Result
	if fs.NArg() == 1 {
		if info, err := os.Stat(fs.Arg(0)); err == nil && info.IsDir() {
			var err error
			result, err = proc.ProcessDirectory(ctx, fs.Arg(0), *recursive)
			if err != nil {
				return err
			}
		} else {
			result = proc.ProcessFiles(ctx, fs.Args())
		}
	} else {
		result = proc.ProcessFiles(ctx, fs.Args())
	}

	if err := writeOutcomes(result, *outDir); err != nil {
		return err
	}

	if *failedLog != "" {
		n, err := batch.ExportFailedLog(result, *failedLog)
		if err != nil {
			return fmt.Errorf("write failed log: %w", err)
		}
		log.Infof("wrote %d failure entries to %s", n, *failedLog)
	}

	if *summary {
		printBatchSummary(result)
	}

	if result.Failed > 0 {
		diag.Warnf(os.Stderr, "extracted %d/%d files (%d failed)", result.Success, result.Total, result.Failed)
	} else {
		diag.Successf(os.Stderr, "extracted %d/%d files", result.Success, result.Total)
	}
	return nil
}

func writeOutcomes(result batch.Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, o := range result.Outcomes {
		if o.Err != nil {
			continue
		}
		base := strings.TrimSuffix(filepath.Base(o.Path), filepath.Ext(o.Path))
		outPath := filepath.Join(outDir, base+".yaml")

		f, err := os.Create(outPath)
		if err != nil {
			return err
		}

		meta := treeformat.Metadata{
			Source:      o.Path,
			Method:      o.Method,
			ExtractedAt: result.FinishedAt.UTC(),
			Version:     treeformat.VersionString(o.Doc.Version),
			Compressed:  o.Doc.Compressed,
			Summary:     o.Doc.Summary,
			External:    o.External,
		}
		err = treeformat.Encode(f, treeformat.Build(o.Doc, meta))
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// printBatchSummary renders the per-error-kind breakdown of a run.
func printBatchSummary(result batch.Result) {
	kinds := make(map[string]int)
	for _, o := range result.Outcomes {
		if o.Err != nil {
			kinds[errorKind(o.Err)]++
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Outcome", "Count"})
	t.AppendRow(table.Row{"success", result.Success})
	for kind, count := range kinds {
		t.AppendRow(table.Row{kind, count})
	}
	t.AppendFooter(table.Row{"total", result.Total})
	t.SetStyle(table.StyleLight)
	t.Render()

	fmt.Printf("elapsed: %s\n", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, hwpv5.ErrNotHWP5):
		return "not-hwp5"
	case errors.Is(err, hwpv5.ErrEncrypted):
		return "encrypted"
	case errors.Is(err, hwpv5.ErrTruncated):
		return "truncated"
	case errors.Is(err, hwpv5.ErrDecodeLimit):
		return "decode-limit"
	case errors.Is(err, hwpv5.ErrMalformedRecord):
		return "malformed-record"
	case errors.Is(err, hwpv5.ErrIOError):
		return "io-error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

func runTriage(args []string) error {
	fs := flag.NewFlagSet("triage", flag.ExitOnError)
	recursive := fs.Bool("recursive", true, "recurse into subdirectories")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("triage needs a directory or file list")
	}

	var files []string
	for _, arg := range fs.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		pattern := filepath.Join(arg, "*.hwp*")
		if *recursive {
			filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
				if err == nil && !fi.IsDir() && strings.HasPrefix(strings.ToLower(filepath.Ext(path)), ".hwp") {
					files = append(files, path)
				}
				return nil
			})
		} else {
			matches, _ := filepath.Glob(pattern)
			files = append(files, matches...)
		}
	}

	summary := triage.TriageFiles(files)

	tbl := simpletable.New()
	tbl.Header = &simpletable.Header{Cells: []*simpletable.Cell{
		{Align: simpletable.AlignLeft, Text: "Format"},
		{Align: simpletable.AlignRight, Text: "Count"},
	}}
	for _, format := range []triage.Format{triage.HWP5x, triage.HWPX, triage.HWP3x, triage.Unknown} {
		tbl.Body.Cells = append(tbl.Body.Cells, []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: format.String()},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", summary.Counts[format])},
		})
	}
	tbl.Footer = &simpletable.Footer{Cells: []*simpletable.Cell{
		{Align: simpletable.AlignLeft, Text: "processable"},
		{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d/%d", summary.Processable, summary.Total)},
	}}
	tbl.SetStyle(simpletable.StyleCompactLite)
	fmt.Println(tbl.String())

	return nil
}
