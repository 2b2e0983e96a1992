package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/username/hourly-report/internal/calendar"
	"github.com/username/hourly-report/internal/config"
	"github.com/username/hourly-report/internal/pipeline"
	"github.com/username/hourly-report/internal/render"
	"github.com/username/hourly-report/internal/report"
	"github.com/username/hourly-report/internal/upload"
	"go.uber.org/zap"
)

func renderCmd() *cobra.Command {
	var opts pipeline.Options
	var latexCommand string
	var driveConfigPath string
	var envFile string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Read config file and output a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts.ConfigPath = configPath

			var uploader pipeline.Uploader
			if opts.Upload {
				drive, err := newDrive(cmd, driveConfigPath, envFile)
				if err != nil {
					return err
				}
				uploader = drive
			}

			p := pipeline.New(
				config.NewReportLoader(logger),
				render.NewRenderer(logger),
				render.NewPDFCompiler(latexCommand, logger),
				uploader,
				logger,
			)

			fmt.Fprintf(out, "Loading data from %s.\n", opts.ConfigPath)
			result, err := p.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Rendered %s using template %s.\n", result.TexPath, opts.TemplatePath)
			if result.PDFPath != "" {
				fmt.Fprintf(out, "Compiled PDF to %s.\n", result.PDFPath)
			}
			if result.UploadedFile != nil {
				fmt.Fprintf(out, "Uploaded %s to Google Drive (id %s).\n", result.UploadedFile.Name, result.UploadedFile.ID)
			}
			fmt.Fprintf(out, "%s %d: %d working days, %d hours.\n",
				result.Data.MonthName(), result.Data.Year(), result.Data.WorkingDays(), result.Data.TotalWorkingHours())
			fmt.Fprintln(out, "All done.")

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.TemplatePath, "template", "t", "latex/template.tex", "Path to the source template")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "hourly_report.pdf", "Path for the PDF report; the intermediate .tex uses the same name")
	cmd.Flags().BoolVar(&opts.SkipPDF, "no-pdf", false, "Only render the .tex file, skip pdflatex")
	cmd.Flags().BoolVar(&opts.Upload, "upload", false, "Upload the result to Google Drive")
	cmd.Flags().StringVar(&latexCommand, "latex", "pdflatex", "LaTeX command used to build the PDF")
	cmd.Flags().StringVar(&driveConfigPath, "drive-config", "gdrive_config.yaml", "Google Drive settings file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional env file holding "+upload.ClientSecretEnvVar)

	return cmd
}

// summary is the JSON shape printed by show --json
type summary struct {
	Year                   int      `json:"year"`
	Month                  int      `json:"month"`
	MonthName              string   `json:"month_name"`
	NextMonth              string   `json:"next_month"`
	NextYear               int      `json:"next_year"`
	DaysInMonth            int      `json:"days_in_month"`
	WorkingHours           []int    `json:"working_hours"`
	WorkingHoursRepr       string   `json:"working_hours_repr"`
	DailyWorkingHoursCount int      `json:"daily_working_hours_count"`
	WorkingDays            int      `json:"working_days"`
	WeekdaysOffDays        int      `json:"weekdays_off_days"`
	HolidayDays            int      `json:"holiday_days"`
	TotalWorkingHours      int      `json:"total_working_hours"`
	Worker                 string   `json:"worker"`
	Initials               string   `json:"initials"`
	Company                string   `json:"company"`
	Lines                  []string `json:"lines"`
}

func newSummary(data *report.Data) summary {
	month := calendar.BuildMonth(data)

	return summary{
		Year:                   data.Year(),
		Month:                  data.Month(),
		MonthName:              data.MonthName(),
		NextMonth:              data.NextMonthRepr(),
		NextYear:               data.NextYear(),
		DaysInMonth:            data.DaysInMonth(),
		WorkingHours:           data.WorkingHours(),
		WorkingHoursRepr:       data.WorkingHoursRepr(),
		DailyWorkingHoursCount: data.DailyWorkingHoursCount(),
		WorkingDays:            month.WorkDays,
		WeekdaysOffDays:        month.Weekends,
		HolidayDays:            month.Holidays,
		TotalWorkingHours:      data.TotalWorkingHours(),
		Worker:                 data.Worker().Name(),
		Initials:               data.Worker().Initials(),
		Company:                data.Company().Name(),
		Lines:                  data.Lines(),
	}
}

func showCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the derived report fields and per-day lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.LoadReport(configPath, logger)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			s := newSummary(data)
			out := cmd.OutOrStdout()

			if asJSON {
				b, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode summary: %w", err)
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			printSummary(out, s, data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func printSummary(out io.Writer, s summary, data *report.Data) {
	fmt.Fprintf(out, "\n📋 %s %d - %s\n", s.MonthName, s.Year, s.Worker)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintf(out, "  Worker:         %s (%s), SS %s\n", s.Worker, data.Worker().DNI(), data.Worker().SSNRepr())
	fmt.Fprintf(out, "  Company:        %s, %s (%s), CCC %s\n", s.Company, data.Company().Workplace(), data.Company().CIF(), data.Company().CCCRepr())
	fmt.Fprintf(out, "  Working hours:  %s (%dh/day)\n", s.WorkingHoursRepr, s.DailyWorkingHoursCount)
	fmt.Fprintf(out, "  Days in month:  %d\n", s.DaysInMonth)
	fmt.Fprintf(out, "  Working days:   %d\n", s.WorkingDays)
	fmt.Fprintf(out, "  Weekdays off:   %d\n", s.WeekdaysOffDays)
	fmt.Fprintf(out, "  Holidays:       %d\n", s.HolidayDays)
	fmt.Fprintf(out, "  Total hours:    %d\n", s.TotalWorkingHours)
	fmt.Fprintf(out, "  Signed:         1 de %s de %d\n", s.NextMonth, s.NextYear)

	fmt.Fprintln(out, "\n📅 Per-day lines:")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	for _, line := range s.Lines {
		fmt.Fprintf(out, "  %s\n", line)
	}
}

func uploadCmd() *cobra.Command {
	var driveConfigPath string
	var envFile string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an existing file to the configured Google Drive folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Fail on a bad path before touching credentials
			if _, err := upload.ExtractFileName(args[0]); err != nil {
				return err
			}

			drive, err := newDrive(cmd, driveConfigPath, envFile)
			if err != nil {
				return err
			}

			file, err := drive.PushFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to upload: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (id %s)\n", file.Name, file.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&driveConfigPath, "drive-config", "gdrive_config.yaml", "Google Drive settings file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional env file holding "+upload.ClientSecretEnvVar)

	return cmd
}

func newDrive(cmd *cobra.Command, driveConfigPath, envFile string) (*upload.Drive, error) {
	driveCfg, err := upload.LoadDriveConfig(driveConfigPath, envFile)
	if err != nil {
		return nil, err
	}

	ts, err := upload.NewAuthorizer(driveCfg, cmd.ErrOrStderr(), logger).TokenSource(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to authorize Google Drive: %w", err)
	}

	logger.Debug("Drive uploader configured", zap.String("folder_id", driveCfg.DestinationFolderID))

	return upload.NewDriveFromConfig(cmd.Context(), driveCfg, ts, logger)
}
