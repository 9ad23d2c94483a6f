package controllers

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/rios0rios0/versioncheck/internal/domain/commands"
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
)

// Styled output functions, NO_COLOR and pipes are handled by the color
// package itself.
var (
	okText   = color.New(color.FgGreen).SprintFunc()
	errText  = color.New(color.FgRed).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

// printSyncReport writes the per-file outcome of a check run, one line
// per configured file with the classic trailing ok/error verdict.
func printSyncReport(report *entities.SyncReport) {
	fmt.Printf("Comparing %s against %s\n", report.Head, report.Base)

	for _, row := range report.Rows {
		switch {
		case row.Err != nil:
			fmt.Printf("  %s: %v... %s\n", row.File, row.Err, errText("error"))
		case row.InSync && row.BaselineVersion == "":
			fmt.Printf("  %s: %s... %s\n", row.File, row.HeadVersion, okText("ok"))
		case row.InSync:
			fmt.Printf("  %s: %s -> %s... %s\n",
				row.File, row.BaselineVersion, row.HeadVersion, okText("ok"))
		default:
			fmt.Printf("  %s: %s -> %s, not bumped... %s\n",
				row.File, row.BaselineVersion, row.HeadVersion, errText("error"))
		}
	}

	if report.OK() {
		fmt.Printf("All %d file(s) in sync... %s\n", len(report.Rows), okText("ok"))
		return
	}

	fmt.Printf("%d of %d file(s) out of sync... %s\n",
		len(report.Offenders()), len(report.Rows), errText("error"))
	fmt.Println(dimText(`Run with --log-level debug for more detail, or bump the versions:
    versioncheck update patch --allow-dirty`))
}

// printResolveSummary writes the outcome of a conflict resolution run.
func printResolveSummary(summary *commands.ResolveSummary) {
	if summary.FilesChecked == 0 {
		fmt.Printf("No configured files in conflict... %s\n", okText("ok"))
		return
	}

	for _, file := range summary.FilesResolved {
		fmt.Printf("  %s: resolved... %s\n", file, okText("ok"))
	}
	for _, file := range summary.ManualFiles {
		fmt.Printf("  %s: manual resolution required... %s\n", file, warnText("manual"))
	}
	for _, file := range summary.MalformedFiles {
		fmt.Printf("  %s: malformed conflict markers... %s\n", file, errText("error"))
	}
	for _, file := range summary.FailedFiles {
		fmt.Printf("  %s: failed... %s\n", file, errText("error"))
	}

	verdict := okText("ok")
	if !summary.OK() {
		verdict = errText("error")
	}
	fmt.Printf("%d conflict block(s) resolved in %d file(s)... %s\n",
		summary.BlocksResolved, summary.FilesChecked, verdict)
}

// printScanReport lists every discovered occurrence and flags the
// configured files that disagree with the declared current version.
func printScanReport(report *entities.ScanReport, settings *entities.Settings) {
	fmt.Printf("Scanning for version %s\n", settings.Current())

	for _, occ := range report.Occurrences {
		marker := okText("ok")
		if !occ.Version.Equal(settings.Current()) {
			marker = dimText("other")
		}
		fmt.Printf("  %s: %s... %s\n", occ.File, occ.Raw, marker)
	}

	for _, mismatch := range report.Mismatches {
		fmt.Printf("  %s: expected %s, found %s... %s\n",
			mismatch.Source, mismatch.Expected, mismatch.Actual, errText("error"))
	}

	if report.HasMismatches() {
		fmt.Printf("%d configured file(s) out of date... %s\n",
			len(report.Mismatches), errText("error"))
		return
	}
	fmt.Printf("Found %d occurrence(s)... %s\n", len(report.Occurrences), okText("ok"))
}

// printSuggestedConfig renders a ready-to-paste files section for every
// scanned file that carries the current version.
func printSuggestedConfig(report *entities.ScanReport, settings *entities.Settings) {
	seen := make(map[string]struct{})
	var files []string
	for _, occ := range report.Occurrences {
		if !occ.Version.Equal(settings.Current()) {
			continue
		}
		if _, dup := seen[occ.File]; dup {
			continue
		}
		seen[occ.File] = struct{}{}
		files = append(files, occ.File)
	}
	sort.Strings(files)

	if len(files) == 0 {
		fmt.Println(dimText("# no files carrying the current version found"))
		return
	}

	fmt.Println("files:")
	for _, file := range files {
		fmt.Printf("  - path: %s\n", file)
	}
}
