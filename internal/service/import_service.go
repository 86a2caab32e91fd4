package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
)

// ── import errors ──

var (
	ErrImportUnreadable = errors.New("no se pudo leer el archivo Excel")
	ErrImportNoSheets   = errors.New("el archivo no contiene las hojas Beneficiarios ni Asistencia")
)

// Workbook sheet names
const (
	SheetBeneficiaries = "Beneficiarios"
	SheetAttendance    = "Asistencia"
)

// Defaults for beneficiaries created by an import
const (
	importedPlaceOfBirth = "Importado"
	importedAddress      = "No registrada"
	importedSignature    = "Importado"
)

// excelEpochOffset days between 1899-12-30 and 1970-01-01
const excelEpochOffset = 25569

// ImportService bulk workbook import
type ImportService interface {
	ImportWorkbook(ctx context.Context, reader io.Reader) (*dto.ImportResponse, error)
}

type importService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewImportService creates an ImportService. loc resolves rows without a date.
func NewImportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ImportService {
	return &importService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── ImportWorkbook ──────────────────────

func (s *importService) ImportWorkbook(ctx context.Context, reader io.Reader) (*dto.ImportResponse, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, ErrImportUnreadable
	}
	defer f.Close()

	benRows, benOK, err := readSheet(f, SheetBeneficiaries)
	if err != nil {
		return nil, err
	}
	attRows, attOK, err := readSheet(f, SheetAttendance)
	if err != nil {
		return nil, err
	}
	if !benOK && !attOK {
		return nil, ErrImportNoSheets
	}

	resp := &dto.ImportResponse{Errors: []dto.ImportRowError{}}
	groups := make(map[string]string)

	if benOK {
		if err := s.importBeneficiaries(ctx, benRows, groups, resp); err != nil {
			return nil, err
		}
	}
	if attOK {
		if err := s.importAttendances(ctx, attRows, resp); err != nil {
			return nil, err
		}
	}

	s.logger.Info("workbook imported",
		zap.Int("beneficiaries", resp.Beneficiaries),
		zap.Int("groups_created", resp.GroupsCreated),
		zap.Int("attendances", resp.Attendances),
		zap.Int("duplicates", resp.Duplicates),
		zap.Int("row_errors", len(resp.Errors)),
	)
	return resp, nil
}

// readSheet raw cell values, so date cells keep their serial number
func readSheet(f *excelize.File, name string) ([][]string, bool, error) {
	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		return nil, false, nil
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, false, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return rows, true, nil
}

// ── Beneficiarios ──

func (s *importService) importBeneficiaries(ctx context.Context, rows [][]string, groups map[string]string, resp *dto.ImportResponse) error {
	if len(rows) < 2 {
		return nil
	}
	col := parseHeaderIndex(rows[0])

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		nationalID := cellAt(row, col, "national_id")
		fullName := cellAt(row, col, "full_name")
		if nationalID == "" || fullName == "" {
			continue
		}

		b := &model.Beneficiary{
			NationalID:   nationalID,
			FullName:     fullName,
			Zone:         cellAt(row, col, "zone"),
			Address:      cellAt(row, col, "address"),
			PlaceOfBirth: importedPlaceOfBirth,
			Gender:       "U",
			Status:       model.StatusActive,
		}

		if groupName := cellAt(row, col, "group"); groupName != "" {
			groupID, err := s.resolveGroup(ctx, groupName, groups, resp)
			if err != nil {
				return err
			}
			b.GroupID = &groupID
		}

		// an empty address only fills new rows
		if b.Address == "" {
			if _, err := s.repo.Beneficiary.GetByNationalID(ctx, nationalID); errors.Is(err, gorm.ErrRecordNotFound) {
				b.Address = importedAddress
			}
		}

		if err := s.repo.Beneficiary.UpsertByNationalID(ctx, b); err != nil {
			s.logger.Error("import beneficiary failed", zap.String("national_id", nationalID), zap.Error(err))
			resp.Errors = append(resp.Errors, dto.ImportRowError{
				Sheet:   SheetBeneficiaries,
				Row:     i + 1,
				Message: "no se pudo guardar el beneficiario",
			})
			continue
		}
		resp.Beneficiaries++
	}
	return nil
}

func (s *importService) resolveGroup(ctx context.Context, name string, cache map[string]string, resp *dto.ImportResponse) (string, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	group, err := s.repo.Group.GetByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		group, err = s.repo.Group.UpsertByName(ctx, &model.Group{Name: name})
		if err == nil {
			resp.GroupsCreated++
		}
	}
	if err != nil {
		s.logger.Error("resolve import group failed", zap.String("name", name), zap.Error(err))
		return "", err
	}

	cache[name] = group.GroupID
	return group.GroupID, nil
}

// ── Asistencia ──

func (s *importService) importAttendances(ctx context.Context, rows [][]string, resp *dto.ImportResponse) error {
	if len(rows) < 2 {
		return nil
	}
	col := parseHeaderIndex(rows[0])

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		nationalID := cellAt(row, col, "national_id")
		if nationalID == "" {
			continue
		}

		date, err := parseImportDate(cellAt(row, col, "date"), s.loc)
		if err != nil {
			resp.Errors = append(resp.Errors, dto.ImportRowError{Sheet: SheetAttendance, Row: i + 1, Message: "fecha inválida"})
			continue
		}

		b, err := s.repo.Beneficiary.GetByNationalID(ctx, nationalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.Errors = append(resp.Errors, dto.ImportRowError{
					Sheet:   SheetAttendance,
					Row:     i + 1,
					Message: "beneficiario no registrado: " + nationalID,
				})
				continue
			}
			return err
		}

		clothes := parseQuantity(cellAt(row, col, "clothes"))
		a := &model.Attendance{
			BeneficiaryID:   b.BeneficiaryID,
			Date:            date,
			Status:          model.AttendancePresent,
			ReceivedFood:    isYes(cellAt(row, col, "food")),
			ReceivedMedical: isYes(cellAt(row, col, "medical")),
			ReceivedClothes: clothes > 0,
			ClothesQuantity: clothes,
			Signature:       importedSignature,
		}

		if err := s.repo.Attendance.Create(ctx, a); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				resp.Duplicates++
				continue
			}
			s.logger.Error("import attendance failed",
				zap.String("national_id", nationalID),
				zap.String("date", calendar.FormatDay(date)),
				zap.Error(err),
			)
			resp.Errors = append(resp.Errors, dto.ImportRowError{
				Sheet:   SheetAttendance,
				Row:     i + 1,
				Message: "no se pudo guardar la asistencia",
			})
			continue
		}
		resp.Attendances++
	}
	return nil
}

// ── helpers ──

// parseHeaderIndex maps header cells to field keys, any column order
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"national_id": -1,
		"full_name":   -1,
		"group":       -1,
		"zone":        -1,
		"address":     -1,
		"date":        -1,
		"food":        -1,
		"medical":     -1,
		"clothes":     -1,
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "cédula", "cedula", "id":
			idx["national_id"] = i
		case "nombre", "nombres":
			idx["full_name"] = i
		case "grupo":
			idx["group"] = i
		case "zona":
			idx["zone"] = i
		case "dirección", "direccion":
			idx["address"] = i
		case "fecha":
			idx["date"] = i
		case "comida":
			idx["food"] = i
		case "medicina":
			idx["medical"] = i
		case "ropa":
			idx["clothes"] = i
		}
	}
	return idx
}

func cellAt(row []string, col map[string]int, key string) string {
	i := col[key]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseImportDate accepts an Excel serial, DD/MM/YYYY or YYYY-MM-DD. Empty means today.
func parseImportDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return calendar.Today(loc), nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		secs := math.Round((serial - excelEpochOffset) * 86400)
		return calendar.DayKey(time.Unix(int64(secs), 0).UTC()), nil
	}
	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, ErrInvalidDate
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Day() != day {
			return time.Time{}, ErrInvalidDate
		}
		return d, nil
	}
	d, err := calendar.ParseDay(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func isYes(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "si") || strings.Contains(lower, "sí")
}

func parseQuantity(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}
