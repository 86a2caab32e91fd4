package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/response"
)

// Handler aggregate entry point for every handler
type Handler struct {
	Group       *GroupHandler
	Beneficiary *BeneficiaryHandler
	Attendance  *AttendanceHandler
	Schedule    *ScheduleHandler
	ServiceDay  *ServiceDayHandler
	Holiday     *HolidayHandler
	Import      *ImportHandler
	Upload      *UploadHandler
	Report      *ReportHandler
	Export      *ExportHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Group:       NewGroupHandler(svc.Group),
		Beneficiary: NewBeneficiaryHandler(svc.Beneficiary),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Schedule:    NewScheduleHandler(svc.Schedule),
		ServiceDay:  NewServiceDayHandler(svc.ServiceDay),
		Holiday:     NewHolidayHandler(svc.Holiday),
		Import:      NewImportHandler(svc.Import),
		Upload:      NewUploadHandler(svc.Upload),
		Report:      NewReportHandler(svc.Report),
		Export:      NewExportHandler(svc.Export),
	}
}

// bindID reads the :id path segment. A missing or non-UUID id answers 400.
func bindID(c *gin.Context, message string) (string, bool) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.BadRequest(c, 10001, message)
		return "", false
	}
	return p.ID, true
}
