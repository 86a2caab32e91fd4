package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── export errors ──

var (
	ErrExportNoServiceDates = errors.New("el grupo no tiene días de servicio en el período")
	ErrExportGenerateFail   = errors.New("no se pudo generar el archivo")
)

// signatureMonths months covered by one signature sheet
const signatureMonths = 3

var monthNames = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// ExportService document exports. Bodies come back as buffers plus a suggested filename.
type ExportService interface {
	SignatureSheetXLSX(ctx context.Context, req *dto.SignatureSheetQuery) (*bytes.Buffer, string, error)
	SignatureSheetPDF(ctx context.Context, req *dto.SignatureSheetQuery) (*bytes.Buffer, string, error)
	DayReportXLSX(ctx context.Context, req *dto.DayReportQuery) (*bytes.Buffer, string, error)
	CalendarICS(ctx context.Context, year int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo       *repository.Repository
	schedule   ScheduleService
	serviceDay ServiceDayService
	logger     *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(
	repo *repository.Repository,
	schedule ScheduleService,
	serviceDay ServiceDayService,
	logger *zap.Logger,
) ExportService {
	return &exportService{repo: repo, schedule: schedule, serviceDay: serviceDay, logger: logger}
}

// signatureSheet roster × service dates of a group
type signatureSheet struct {
	group  *model.Group
	roster []model.Beneficiary
	dates  []time.Time
	title  string
	period string
}

func (s *exportService) loadSignatureSheet(ctx context.Context, req *dto.SignatureSheetQuery) (*signatureSheet, error) {
	group, dates, err := s.schedule.GroupDates(ctx, req.GroupID, req.Year, req.Month, signatureMonths)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrExportNoServiceDates
	}

	roster, err := s.repo.Beneficiary.ListActiveByGroup(ctx, group.GroupID)
	if err != nil {
		s.logger.Error("list group roster failed", zap.String("group_id", group.GroupID), zap.Error(err))
		return nil, err
	}

	last := dates[len(dates)-1]
	period := fmt.Sprintf("%s %d", monthNames[req.Month], req.Year)
	if last.Month() != time.Month(req.Month) || last.Year() != req.Year {
		period += fmt.Sprintf(" - %s %d", monthNames[last.Month()], last.Year())
	}

	return &signatureSheet{
		group:  group,
		roster: roster,
		dates:  dates,
		title:  "Planilla de Firmas - Grupo " + group.Name,
		period: period,
	}, nil
}

// ────────────────────── SignatureSheetXLSX ──────────────────────

func (s *exportService) SignatureSheetXLSX(ctx context.Context, req *dto.SignatureSheetQuery) (*bytes.Buffer, string, error) {
	sheet, err := s.loadSignatureSheet(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Firmas"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(2 + len(sheet.dates))
	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 32)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", lastCol, 14)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle := newHeaderStyle(f)
	gridStyle, _ := f.NewStyle(&excelize.Style{Border: gridBorder()})

	f.SetCellValue(sheetName, "A1", sheet.title)
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetCellValue(sheetName, "A2", sheet.period)
	f.MergeCell(sheetName, "A2", cell(lastCol, 2))

	row := 4
	f.SetCellValue(sheetName, cell("A", row), "N°")
	f.SetCellValue(sheetName, cell("B", row), "Nombre")
	f.SetCellValue(sheetName, cell("C", row), "Cédula")
	for i, d := range sheet.dates {
		f.SetCellValue(sheetName, cell(colName(3+i), row), d.Format("02/01"))
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)

	for i, b := range sheet.roster {
		row++
		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), b.FullName)
		f.SetCellValue(sheetName, cell("C", row), b.NationalID)
		f.SetRowHeight(sheetName, row, 24)
	}
	if row > 4 {
		f.SetCellStyle(sheetName, cell("A", 5), cell(lastCol, row), gridStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write signature workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, signatureFilename(sheet, req, "xlsx"), nil
}

// ────────────────────── SignatureSheetPDF ──────────────────────

func (s *exportService) SignatureSheetPDF(ctx context.Context, req *dto.SignatureSheetQuery) (*bytes.Buffer, string, error) {
	sheet, err := s.loadSignatureSheet(ctx, req)
	if err != nil {
		return nil, "", err
	}

	// name 4, id 2, one column per date
	grid := 6 + len(sheet.dates)
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(grid, sheet.title, props.Text{
			Style: fontstyle.Bold,
			Size:  14,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(grid, sheet.period, props.Text{
			Size:  10,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(grid, props.Line{Color: &pdfLineColor}))

	cellStyle := &props.Cell{BorderType: border.Full, BorderColor: &pdfLineColor}
	headerText := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2}

	cols := []core.Col{
		text.NewCol(4, "Nombre", headerText).WithStyle(cellStyle),
		text.NewCol(2, "Cédula", headerText).WithStyle(cellStyle),
	}
	for _, d := range sheet.dates {
		cols = append(cols, text.NewCol(1, d.Format("02/01"), headerText).WithStyle(cellStyle))
	}
	m.AddRow(8, cols...)

	bodyText := props.Text{Size: 8, Left: 1, Top: 3}
	for _, b := range sheet.roster {
		cols := []core.Col{
			text.NewCol(4, b.FullName, bodyText).WithStyle(cellStyle),
			text.NewCol(2, b.NationalID, bodyText).WithStyle(cellStyle),
		}
		for range sheet.dates {
			cols = append(cols, col.New(1).WithStyle(cellStyle))
		}
		m.AddRow(10, cols...)
	}

	doc, err := m.Generate()
	if err != nil {
		s.logger.Error("generate signature pdf failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return bytes.NewBuffer(doc.GetBytes()), signatureFilename(sheet, req, "pdf"), nil
}

func signatureFilename(sheet *signatureSheet, req *dto.SignatureSheetQuery, ext string) string {
	return fmt.Sprintf("firmas_%s_%d-%02d.%s", sheet.group.Name, req.Year, req.Month, ext)
}

// ────────────────────── DayReportXLSX ──────────────────────

func (s *exportService) DayReportXLSX(ctx context.Context, req *dto.DayReportQuery) (*bytes.Buffer, string, error) {
	report, err := s.serviceDay.GetDayReport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Reporte"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "H", 14)

	headerStyle := newHeaderStyle(f)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Reporte del día %s - Grupo %s", report.Date, report.GroupName))
	f.MergeCell(sheetName, "A1", "H1")

	headers := []string{"Nombre", "Cédula", "Estado", "Comida", "Ropa", "Medicina", "Medicamentos", "Firma"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 3), h)
	}
	f.SetCellStyle(sheetName, "A3", "H3", headerStyle)

	row := 3
	for _, r := range report.Records {
		row++
		if r.Beneficiary != nil {
			f.SetCellValue(sheetName, cell("A", row), r.Beneficiary.FullName)
			f.SetCellValue(sheetName, cell("B", row), r.Beneficiary.NationalID)
		}
		f.SetCellValue(sheetName, cell("C", row), r.Status)
		f.SetCellValue(sheetName, cell("D", row), r.FoodQuantity)
		f.SetCellValue(sheetName, cell("E", row), r.ClothesQuantity)
		f.SetCellValue(sheetName, cell("F", row), yesNo(r.ReceivedMedical))
		f.SetCellValue(sheetName, cell("G", row), r.MedicinesReceived)
		f.SetCellValue(sheetName, cell("H", row), r.Signature)
	}

	row += 2
	stats := []struct {
		label string
		value int
	}{
		{"Beneficiarios", report.Stats.TotalBeneficiaries},
		{"Presentes", report.Stats.Present},
		{"Ausentes", report.Stats.Absent},
		{"Bolsas de comida", report.Stats.FoodPacks},
		{"Piezas de ropa", report.Stats.ClothesPieces},
		{"Atención médica", report.Stats.MedicalAttention},
	}
	for _, st := range stats {
		f.SetCellValue(sheetName, cell("A", row), st.label)
		f.SetCellValue(sheetName, cell("B", row), st.value)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write day report workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("reporte_%s_%s.xlsx", report.GroupName, report.Date), nil
}

// ────────────────────── CalendarICS ──────────────────────

func (s *exportService) CalendarICS(ctx context.Context, year int) (*bytes.Buffer, string, error) {
	from, to := calendar.YearBounds(year)
	days, err := s.schedule.MergedRange(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	body := BuildCalendarICS(days, time.Now().UTC())
	return bytes.NewBufferString(body), fmt.Sprintf("calendario_%d.ics", year), nil
}

// ── helpers ──

func newHeaderStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    gridBorder(),
	})
	return style
}

func gridBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#BFBFBF", Style: 1},
		{Type: "right", Color: "#BFBFBF", Style: 1},
		{Type: "top", Color: "#BFBFBF", Style: 1},
		{Type: "bottom", Color: "#BFBFBF", Style: 1},
	}
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
