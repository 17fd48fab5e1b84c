package client

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/spf13/cobra"
)

type uploadResponse struct {
	UploadURL string           `json:"uploadUrl"`
	Method    string           `json:"method"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Document  *domain.Document `json:"document"`
}

// DocsCmd creates the docs parent command
func DocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"documents"},
		Short:   "Manage business documents",
	}

	cmd.AddCommand(docsListCmd())
	cmd.AddCommand(docsGetCmd())
	cmd.AddCommand(docsAddCmd())
	cmd.AddCommand(docsRemoveCmd())

	return cmd
}

func docsListCmd() *cobra.Command {
	var category, status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			var docs []domain.Document
			if err := api.Get("/api/documents", &docs); err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}

			filtered := make([]domain.Document, 0, len(docs))
			for _, d := range docs {
				if category != "" && string(d.Category) != category {
					continue
				}
				if status != "" && string(d.Status) != status {
					continue
				}
				filtered = append(filtered, d)
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), filtered)
			}

			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No documents found")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tFILE\tUPDATED")
			for _, d := range filtered {
				file := "-"
				if d.FileURL != nil {
					file = "yes"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.Title, d.Category, d.Status, file, d.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category (handbook|sop|policy|marketing|general)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|review|approved)")

	return cmd
}

func docsGetCmd() *cobra.Command {
	var download string

	cmd := &cobra.Command{
		Use:     "get <document_id>",
		Aliases: []string{"view"},
		Short:   "Show a document, optionally downloading its file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "document")
			if err != nil {
				return err
			}

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			var doc domain.Document
			if err := api.Get(fmt.Sprintf("/api/documents/%d", id), &doc); err != nil {
				if IsNotFound(err) {
					return fmt.Errorf("document %d not found", id)
				}
				return fmt.Errorf("failed to get document: %w", err)
			}

			if download != "" {
				url, err := api.Location(fmt.Sprintf("/api/documents/%d/file", id))
				if err != nil {
					return fmt.Errorf("failed to resolve document file: %w", err)
				}
				if err := api.DownloadFile(url, download); err != nil {
					return err
				}
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), doc)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", doc.Title)
			fmt.Fprintf(out, "Category: %s\n", doc.Category)
			fmt.Fprintf(out, "Status: %s\n", doc.Status)
			if len(doc.Tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(doc.Tags, ", "))
			}
			if doc.FileURL != nil {
				fmt.Fprintf(out, "File: %s\n", *doc.FileURL)
			}
			fmt.Fprintf(out, "Created: %s\n", doc.CreatedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Updated: %s\n", doc.UpdatedAt.Local().Format(time.DateTime))
			if d := deref(doc.Description); d != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, d)
			}
			if download != "" {
				fmt.Fprintf(out, "\nDownloaded file to %s\n", download)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&download, "download", "", "Save the document's file to this path")

	return cmd
}

func docsAddCmd() *cobra.Command {
	var (
		title       string
		description string
		category    string
		status      string
		tags        []string
		file        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a document, optionally uploading a file for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			body := map[string]any{
				"title":       title,
				"description": description,
				"category":    category,
			}
			if status != "" {
				body["status"] = status
			}
			if len(tags) > 0 {
				body["tags"] = tags
			}

			var doc domain.Document
			if err := api.Post("/api/documents", body, &doc); err != nil {
				return fmt.Errorf("failed to create document: %w", err)
			}

			if file != "" {
				uploaded, err := uploadDocumentFile(api, doc.ID, file)
				if err != nil {
					return fmt.Errorf("document %d created but upload failed: %w", doc.ID, err)
				}
				if uploaded != nil {
					doc = *uploaded
				}
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), doc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created document %d: %s\n", doc.ID, doc.Title)
			if file != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", filepath.Base(file))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Document title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Document description")
	cmd.Flags().StringVarP(&category, "category", "c", "general", "Category (handbook|sop|policy|marketing|general)")
	cmd.Flags().StringVar(&status, "status", "", "Status (draft|review|approved)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "File to upload for the document")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func docsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <document_id>",
		Aliases: []string{"delete"},
		Short:   "Delete a document and its stored file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "document")
			if err != nil {
				return err
			}

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			if err := api.Delete(fmt.Sprintf("/api/documents/%d", id)); err != nil {
				if IsNotFound(err) {
					return fmt.Errorf("document %d not found", id)
				}
				return fmt.Errorf("failed to delete document: %w", err)
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %d\n", id)
			return nil
		},
	}
}

func uploadDocumentFile(api *APIClient, docID int64, path string) (*domain.Document, error) {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var res uploadResponse
	err := api.Post(fmt.Sprintf("/api/documents/%d/file", docID), map[string]string{
		"filename":    filepath.Base(path),
		"contentType": contentType,
	}, &res)
	if err != nil {
		return nil, err
	}

	if err := api.UploadFile(res.UploadURL, path, contentType); err != nil {
		return nil, err
	}
	return res.Document, nil
}
