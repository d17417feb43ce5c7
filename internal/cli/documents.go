package cli

import (
	"context"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/document"
	"hrportal/internal/portal"
)

func (rt *runtime) documentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Upload and verify documents",
	}

	var filter document.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List every document",
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchDocuments(ctx, filter)
			if err != nil {
				return err
			}
			return rt.print(cmd, documentTable(list))
		}),
	}
	list.Flags().StringVar(&filter.Type, "type", "", "only this type or category")
	list.Flags().StringVar(&filter.Status, "status", "", "pending, verified or rejected")

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your documents",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchMyDocuments(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, documentTable(list))
		}),
	}

	var form portal.DocumentForm
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			file, closeFile, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer closeFile()
			form.File = file
			if form.Title == "" {
				form.Title = file.Name
			}
			d, err := p.UploadDocument(ctx, form)
			if err != nil {
				return err
			}
			return rt.print(cmd, documentTable([]document.Document{d}))
		}),
	}
	upload.Flags().StringVar(&form.Title, "title", "", "title (defaults to the file name)")
	upload.Flags().StringVar(&form.Category, "category", "Other", "Policy, Forms, Benefits, Training, Reports or Other")
	upload.Flags().StringVar(&form.Type, "type", "", "document type (defaults to the category)")
	upload.Flags().StringVar(&form.Description, "description", "", "description")

	var patch document.Patch
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a document's details",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			d, err := p.UpdateDocument(ctx, args[0], patch)
			if err != nil {
				return err
			}
			return rt.print(cmd, documentTable([]document.Document{d}))
		}),
	}
	update.Flags().StringVar(&patch.Title, "title", "", "title")
	update.Flags().StringVar(&patch.Category, "category", "", "category")
	update.Flags().StringVar(&patch.Type, "type", "", "type")
	update.Flags().StringVar(&patch.Description, "description", "", "description")
	update.Flags().StringVar(&patch.Status, "status", "", "status (HR only)")

	verify := &cobra.Command{
		Use:   "verify <id>",
		Short: "Mark a document verified",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			d, err := p.VerifyDocument(ctx, args[0])
			if err != nil {
				return err
			}
			return rt.print(cmd, documentTable([]document.Document{d}))
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			if err := p.DeleteDocument(ctx, args[0]); err != nil {
				return err
			}
			return rt.done(cmd, "Document "+args[0]+" deleted")
		}),
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count documents by status and category",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			s, err := p.FetchDocumentStats(ctx)
			if err != nil {
				return err
			}
			t := table{value: s, header: []string{"GROUP", "VALUE", "COUNT"}}
			t.rows = append(t.rows, []string{"total", "", strconv.Itoa(s.Total)})
			t.rows = append(t.rows, countRows("status", s.ByStatus)...)
			t.rows = append(t.rows, countRows("category", s.ByCategory)...)
			return rt.print(cmd, t)
		}),
	}

	cmd.AddCommand(list, mine, upload, update, verify, del, stats)
	return cmd
}

func countRows(group string, counts map[string]int) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{group, k, strconv.Itoa(counts[k])})
	}
	return rows
}

func documentTable(list []document.Document) table {
	t := table{value: list, header: []string{"ID", "TITLE", "CATEGORY", "FILE", "STATUS", "UPLOADED"}}
	for _, d := range list {
		t.rows = append(t.rows, []string{d.ID, d.Title, d.Category, d.FileName, d.Status, formatDate(d.UploadedAt)})
	}
	return t
}
