package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/yankh764/cookies-analyzer/internal/analyzer"
	"github.com/yankh764/cookies-analyzer/internal/cookielog"
	"github.com/yankh764/cookies-analyzer/internal/output"
	"github.com/yankh764/cookies-analyzer/internal/storage"
)

const usage = "usage: cookies-analyzer -f <file> -d <YYYY-MM-DD> [-full-scan] [-output text|json]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation: 0 on success, 1 on runtime errors,
// 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		file     string
		date     string
		fullScan bool
		format   string
	)
	fs := flag.NewFlagSet("cookies-analyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&file, "f", "", "Cookie log file path (plain, gzip or zstd)")
	fs.StringVar(&file, "file", "", "Cookie log file path (plain, gzip or zstd)")
	fs.StringVar(&date, "d", "", "Date to analyze in YYYY-MM-DD format")
	fs.StringVar(&date, "date", "", "Date to analyze in YYYY-MM-DD format")
	fs.BoolVar(&fullScan, "full-scan", false, "Read the whole log instead of stopping past the target date (for unsorted input)")
	fs.StringVar(&format, "output", "text", "Output format: text|json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if file == "" || date == "" {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(stderr, "unknown output format: %q\n", format)
		return 2
	}

	// Validate the date before touching the file.
	day, err := analyzer.ParseDate(date)
	if err != nil {
		return fail(stderr, err)
	}

	src, err := storage.Open(file)
	if err != nil {
		return fail(stderr, err)
	}
	defer src.Close()

	reader, err := cookielog.NewReader(src)
	if err != nil {
		return fail(stderr, err)
	}

	result, err := analyzer.Analyze(reader, day, analyzer.Options{FullScan: fullScan})
	if err != nil {
		return fail(stderr, err)
	}

	cookies := result.MostActive()
	if format == "json" {
		err = output.WriteJSON(stdout, day, cookies, result.MaxCount)
	} else {
		err = output.WriteText(stdout, cookies)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return 0
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "cookies-analyzer: %v\n", err)
	return 1
}
