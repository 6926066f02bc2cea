package drive

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	mimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	mimeCSV         = "text/csv"
)

// Service is a read-only Google Drive client authenticated with a service account.
type Service struct {
	srv *drive.Service
}

func NewService(ctx context.Context, credentialsJSON string) (*Service, error) {
	if credentialsJSON == "" {
		return nil, fmt.Errorf("google drive credentials must be provided")
	}

	config, err := google.JWTConfigFromJSON([]byte(credentialsJSON), drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Drive client: %w", err)
	}

	return &Service{srv: srv}, nil
}

type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// ListFiles returns the non-trashed files directly under folderID ("root" when empty).
func (s *Service) ListFiles(ctx context.Context, folderID string) ([]File, error) {
	if folderID == "" {
		folderID = "root"
	}

	var files []File
	call := s.srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("nextPageToken, files(id, name, mimeType)").
		Context(ctx)

	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			files = append(files, File{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	return files, nil
}

// DownloadFile copies the binary content of a regular Drive file into w.
func (s *Service) DownloadFile(ctx context.Context, fileID string, w io.Writer) error {
	resp, err := s.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("unable to download file: %w", err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

// ExportFile converts a Google Workspace document to mimeType and copies it into w.
func (s *Service) ExportFile(ctx context.Context, fileID, mimeType string, w io.Writer) error {
	resp, err := s.srv.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("unable to export file: %w", err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}
