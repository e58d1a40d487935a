package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kidlearn/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Email a child's progress report to a parent",
	Long: `report builds the parent dashboard for one user and sends it through
Amazon SES. SES_FROM_EMAIL must be set; with --dry-run the rendered text
body is printed instead.`,
	Example: `  kidlearnctl report --user 3 --to parent@example.com
  kidlearnctl report --user 3 --dry-run`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Int64("user", 0, "User ID to report on")
	reportCmd.Flags().String("to", "", "Recipient email address")
	reportCmd.Flags().Bool("dry-run", false, "Print the report instead of sending it")
	_ = reportCmd.MarkFlagRequired("user")
}

func runReport(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetInt64("user")
	to, _ := cmd.Flags().GetString("to")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if to == "" && !dryRun {
		return fmt.Errorf("--to is required unless --dry-run is set")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	sizes := service.LevelSizes{Reading: e.cfg.ReadingLevelItems, Math: e.cfg.MathLevelItems}
	agg := service.NewAggregator(e.cfg.MinutesPerItem, e.cfg.DailyCapMinutes, e.cfg.Location())
	dashboard, err := service.NewDashboardService(e.db, agg, sizes, e.cfg.DashboardLevels).Dashboard(ctx, userID)
	if err != nil {
		return err
	}

	if dryRun {
		subject, _, text := service.RenderProgressReport(dashboard, e.cfg.AppBaseURL)
		fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s", subject, text)
		return nil
	}

	emails, err := service.NewEmailService(ctx, e.cfg.AWSRegion, e.cfg.SESFromEmail, e.cfg.SESFromName, e.cfg.AppBaseURL, e.log)
	if err != nil {
		return err
	}
	if !emails.IsEnabled() {
		return fmt.Errorf("email is not configured: set SES_FROM_EMAIL")
	}
	if err := emails.SendProgressReport(ctx, to, dashboard); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report for %s sent to %s\n", dashboard.User.Name, to)
	return nil
}
