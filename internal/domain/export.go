package domain

import "context"

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// ExportArtifact is a fully-encoded download. It is only returned on success.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Body        []byte
	Rows        int
}

type ExportUsecase interface {
	Export(ctx context.Context, ids []int64, format string) (*ExportArtifact, error)
}
