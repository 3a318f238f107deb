package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

var (
	runsJSON bool
	runsAuth string
)

var runsCmd = &cobra.Command{
	Use:   "runs [session]",
	Short: "List the runs of an instrument session",
	Long: `Lists the runs recorded in an instrument session, in the order Tiled
returns them. Runs whose metadata cannot be read are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output runs as JSON")
	runsCmd.Flags().StringVar(&runsAuth, "auth", "", "authorization header value forwarded to Tiled")
	rootCmd.AddCommand(runsCmd)
}

// runView is the printed form of a run.
type runView struct {
	ID         string `json:"id"`
	ScanNumber *int64 `json:"scan_number"`
	PlanName   string `json:"plan_name,omitempty"`
}

func runRuns(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	runs, err := sessionService.Runs(cmd.Context(), args[0], domain.Credential(runsAuth))
	if err != nil {
		return fmt.Errorf("listing runs failed: %w", err)
	}

	views := make([]runView, len(runs))
	for i := range runs {
		views[i] = runView{ID: runs[i].ID(), ScanNumber: runs[i].ScanNumber, PlanName: runs[i].PlanName}
	}

	if runsJSON {
		return outputRunsJSON(cmd, views)
	}
	return outputRunsTable(cmd, args[0], views)
}

func outputRunsJSON(cmd *cobra.Command, runs []runView) error {
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func outputRunsTable(cmd *cobra.Command, session string, runs []runView) error {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs found in %s.\n", session)
		return nil
	}

	if !isTerminal(out) {
		for _, r := range runs {
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.ID, scanText(r.ScanNumber), r.PlanName)
		}
		return nil
	}

	st := newRunStyles(out)
	fmt.Fprintln(out, st.title.Render(fmt.Sprintf("%s · %d runs", session, len(runs))))
	fmt.Fprintln(out, st.header.Render(row("ID", "SCAN", "PLAN")))
	for _, r := range runs {
		fmt.Fprintln(out,
			st.id.Render(pad(r.ID, idWidth))+
				st.scan.Render(pad(scanText(r.ScanNumber), scanWidth))+
				st.plan.Render(r.PlanName),
		)
	}
	return nil
}

const (
	idWidth   = 38
	scanWidth = 8
)

type runStyles struct {
	title  lipgloss.Style
	header lipgloss.Style
	id     lipgloss.Style
	scan   lipgloss.Style
	plan   lipgloss.Style
}

func newRunStyles(w io.Writer) runStyles {
	r := lipgloss.NewRenderer(w)
	return runStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).MarginBottom(1),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C7086")),
		id:     r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		scan:   r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		plan:   r.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
	}
}

func row(id, scan, plan string) string {
	return pad(id, idWidth) + pad(scan, scanWidth) + plan
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	for w := lipgloss.Width(s); w < width; w++ {
		s += " "
	}
	return s + " "
}

func scanText(scan *int64) string {
	if scan == nil {
		return "-"
	}
	return strconv.FormatInt(*scan, 10)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
