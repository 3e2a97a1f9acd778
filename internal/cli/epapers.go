package cli

import (
	"errors"
	"fmt"
	"strings"

	"presskit-cli/internal/api"
	"presskit-cli/internal/model"

	"github.com/spf13/cobra"
)

func newEpapersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "epapers",
		Aliases: []string{"editions"},
		Short:   "Manage editions (ePapers)",
	}
	cmd.AddCommand(newEpapersListCmd(app))
	cmd.AddCommand(newEpapersShowCmd(app))
	cmd.AddCommand(newEpapersCreateCmd(app))
	cmd.AddCommand(newEpapersUpdateCmd(app))
	cmd.AddCommand(newEpapersDeleteCmd(app))
	cmd.AddCommand(newEpapersReorderCmd(app))
	cmd.AddCommand(newEpapersImagesCmd(app))
	cmd.AddCommand(newEpapersByDateCmd(app))
	cmd.AddCommand(newEpapersLatestDateCmd(app))
	cmd.AddCommand(newEpapersDateRangeCmd(app))
	cmd.AddCommand(newEpapersDownloadPDFCmd(app))
	return cmd
}

func newEpapersListCmd(app *App) *cobra.Command {
	var f api.EpaperFilters
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List editions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			f.Status = model.Status(status)
			eps, err := app.Client().ListEpapers(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": eps, "total": len(eps)})
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "Server-side search term")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|published|archived)")
	cmd.Flags().StringVar(&f.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "End date (YYYY-MM-DD)")
	return cmd
}

func newEpapersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <epaper-id>",
		Short: "Show one edition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			e, err := app.Client().GetEpaper(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
}

func epaperUploadFlags(cmd *cobra.Command, up *api.EpaperUpload, status *string) {
	cmd.Flags().StringVar(&up.Name, "name", "", "Edition name")
	cmd.Flags().StringVar(&up.Date, "date", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&up.FileType, "file-type", "image", "Source file type")
	cmd.Flags().StringVar(status, "status", string(model.StatusDraft), "Status (draft|published|archived)")
	cmd.Flags().StringSliceVar(&up.ImagePaths, "image", nil, "Page image file (repeatable, in page order)")
	cmd.Flags().StringVar(&up.PDFPath, "pdf", "", "Companion PDF file")
}

func newEpapersCreateCmd(app *App) *cobra.Command {
	var up api.EpaperUpload
	var status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an edition (uploads staged files)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			up.Status = model.Status(status)
			form := EpaperForm{Name: up.Name, Date: up.Date, Status: up.Status}
			if problems := form.Validate(); len(problems) > 0 {
				return writeErr(cmd, validationError(problems))
			}
			if len(up.ImagePaths) == 0 && up.PDFPath == "" {
				return writeErr(cmd, errors.New("provide at least one --image or a --pdf"))
			}
			e, err := app.Client().CreateEpaper(cmd.Context(), up)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
	epaperUploadFlags(cmd, &up, &status)
	return cmd
}

func newEpapersUpdateCmd(app *App) *cobra.Command {
	var up api.EpaperUpload
	var status string

	cmd := &cobra.Command{
		Use:   "update <epaper-id>",
		Short: "Update an edition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			up.Status = model.Status(status)
			form := EpaperForm{Name: up.Name, Date: up.Date, Status: up.Status}
			if problems := form.Validate(); len(problems) > 0 {
				return writeErr(cmd, validationError(problems))
			}
			e, err := app.Client().UpdateEpaper(cmd.Context(), args[0], up)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
	epaperUploadFlags(cmd, &up, &status)
	cmd.Flags().BoolVar(&up.RemovePDF, "remove-pdf", false, "Remove the companion PDF")
	cmd.Flags().StringVar(&up.ReplaceImageID, "replace-image", "", "Image id replaced by the uploaded file")
	return cmd
}

func newEpapersDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <epaper-id>",
		Short: "Delete an edition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete without --yes"))
			}
			if err := app.Client().DeleteEpaper(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "deleted"})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func newEpapersReorderCmd(app *App) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "reorder <epaper-id>",
		Short: "Replace the edition's page order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			ids := splitIDs(order)
			if len(ids) == 0 {
				return writeErr(cmd, errors.New("provide --order as a comma-separated list of image ids"))
			}
			// The backend expects the complete order; verify against the
			// edition before sending so partial lists fail here, not there.
			e, err := app.Client().GetEpaper(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := verifyCompleteOrder(e, ids); err != nil {
				return writeErr(cmd, err)
			}
			if err := app.Client().ReorderEpaper(cmd.Context(), args[0], ids); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"imageOrder": ids}})
		},
	}
	cmd.Flags().StringVar(&order, "order", "", "Comma-separated image ids, first page first")
	return cmd
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func verifyCompleteOrder(e *model.Epaper, ids []string) error {
	want := map[string]bool{}
	for _, img := range e.Images {
		want[img.ID] = true
	}
	if len(ids) != len(want) {
		return fmt.Errorf("order has %d ids, edition has %d pages", len(ids), len(want))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if !want[id] {
			return fmt.Errorf("unknown image id %s", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate image id %s", id)
		}
		seen[id] = true
	}
	return nil
}

func newEpapersImagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Manage an edition's page images",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <epaper-id> <image-id>",
		Short: "Delete one page image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			if err := app.Client().DeleteEpaperImage(cmd.Context(), args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "deleted"})
		},
	})
	return cmd
}

func newEpapersByDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "by-date <YYYY-MM-DD>",
		Short: "Show the edition published on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Client().GetEpaperByDate(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
}

func newEpapersLatestDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "latest-date",
		Short: "Show the most recent publication date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := app.Client().LatestDate(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"date": date}})
		},
	}
}

func newEpapersDateRangeCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "date-range",
		Short: "List publication dates within a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" || end == "" {
				return writeErr(cmd, errors.New("both --start and --end are required"))
			}
			dates, err := app.Client().DateRange(cmd.Context(), start, end)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": dates})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	return cmd
}

func newEpapersDownloadPDFCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download-pdf <epaper-id>",
		Short: "Download the edition's companion PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Client().GetEpaper(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if e.PDF == nil {
				return writeErr(cmd, errors.New("edition has no PDF"))
			}
			dest := out
			if dest == "" {
				dest = fmt.Sprintf("epaper-%s-%s.pdf", e.Date, e.ID)
			}
			if err := app.Client().Download(cmd.Context(), e.PDF.Path, dest); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"saved": dest}})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination file (default <date>-<id>.pdf)")
	return cmd
}
