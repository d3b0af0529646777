package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/apperror"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/metrics"
)

const (
	exportDateLayout = "02/01/2006 15:04"
	exportSheet      = "Contatos"

	ContentTypeCSV  = "text/csv; charset=UTF-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHeaders is the fixed column order of every export.
var ExportHeaders = []string{
	"ID", "Nome", "E-mail", "Telefone", "Estado", "Cidade", "Bairro", "Endereço", "Número", "Criado em",
}

type exportUsecase struct {
	repo domain.ContactRepository
	now  func() time.Time
}

func NewExportUsecase(repo domain.ContactRepository) domain.ExportUsecase {
	return &exportUsecase{repo: repo, now: time.Now}
}

// Export loads the selected contacts (all of them when ids is empty) and encodes
// them. Nothing is returned unless encoding completed.
func (u *exportUsecase) Export(ctx context.Context, ids []int64, format string) (*domain.ExportArtifact, error) {
	if format == "" {
		format = domain.ExportFormatCSV
	}
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return nil, apperror.BadRequest(fmt.Sprintf("Formato de exportação não suportado: %s", format))
	}

	contacts, err := u.repo.ListForExport(ctx, ids)
	if err != nil {
		return nil, u.fail(format, ids, fmt.Errorf("failed to fetch contacts for export: %w", err))
	}

	rows := make([][]string, 0, len(contacts))
	for i := range contacts {
		rows = append(rows, exportRow(&contacts[i]))
	}

	var body []byte
	var contentType string
	switch format {
	case domain.ExportFormatXLSX:
		body, err = encodeXLSX(rows)
		contentType = ContentTypeXLSX
	default:
		body, err = encodeCSV(rows)
		contentType = ContentTypeCSV
	}
	if err != nil {
		return nil, u.fail(format, ids, err)
	}

	metrics.ExportsTotal.WithLabelValues(format, "success").Inc()
	return &domain.ExportArtifact{
		FileName:    fmt.Sprintf("contatos_%s.%s", u.now().Format("20060102_150405"), format),
		ContentType: contentType,
		Body:        body,
		Rows:        len(rows),
	}, nil
}

func (u *exportUsecase) fail(format string, ids []int64, err error) error {
	metrics.ExportsTotal.WithLabelValues(format, "failure").Inc()
	logger.Log.Error("contact export failed", "format", format, "ids", ids, "error", err)
	return apperror.InternalMsg("Erro ao exportar contatos", err)
}

func exportRow(c *domain.Contact) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Nome,
		c.Email,
		deref(c.Telefone),
		deref(c.Estado),
		deref(c.Cidade),
		deref(c.Bairro),
		deref(c.Endereco),
		deref(c.Numero),
		c.CreatedAt.Format(exportDateLayout),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, header := range ExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(ExportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", endCell, headerStyle); err != nil {
		return nil, err
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellStr(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	for i := range ExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(exportSheet, col, col, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
