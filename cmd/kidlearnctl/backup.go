package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kidlearn/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database to a JSON file",
	Example: `  kidlearnctl export
  kidlearnctl export --output mybackup.json`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON backup into the database",
	Example: `  # Merge with existing data
  kidlearnctl import --input backup.json

  # Replace all data
  kidlearnctl import --input backup.json --clear`,
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd.Flags().StringP("input", "i", "", "Input file path")
	importCmd.Flags().Bool("clear", false, "Clear existing data before import (destructive)")
	importCmd.Flags().Bool("yes", false, "Skip the confirmation prompt for --clear")
	_ = importCmd.MarkFlagRequired("input")
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	e.log.Info("exporting database", "path", outputPath)
	if err := service.NewBackupService(e.db, e.log).ExportFile(cmd.Context(), outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if info, err := os.Stat(outputPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Export complete: %s (%.2f MB)\n", outputPath, float64(info.Size())/1024/1024)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	clearData, _ := cmd.Flags().GetBool("clear")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if clearData && !skipConfirm {
		fmt.Fprint(cmd.OutOrStdout(), "This will delete all existing data. Type 'yes' to confirm: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
			return nil
		}
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := service.NewBackupService(e.db, e.log).ImportFile(cmd.Context(), inputPath, clearData); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Import complete")
	return nil
}
