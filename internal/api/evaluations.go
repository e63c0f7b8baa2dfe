package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/doanvu/school-eval-api/internal/access"
	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/evaluation"
	"github.com/doanvu/school-eval-api/internal/export"
	"github.com/doanvu/school-eval-api/internal/models"
)

func criteriaFromQuery(c echo.Context) evaluation.Criteria {
	return evaluation.Criteria{
		Search:  c.QueryParam("search"),
		Student: c.QueryParam("student"),
		Teacher: c.QueryParam("teacher"),
		Type:    c.QueryParam("type"),
		Date:    c.QueryParam("date"),
	}
}

// scopeViews suppresses the self-evident columns for the caller's roles.
func scopeViews(ident models.Identity, views []models.EvaluationView) []models.EvaluationView {
	hidden := access.HiddenColumns(ident.Roles, access.Evaluation)
	if hidden == nil {
		return views
	}
	out := make([]models.EvaluationView, len(views))
	copy(out, views)
	for i := range out {
		if hidden["student"] {
			out[i].StudentName = ""
		}
		if hidden["teacher"] {
			out[i].TeacherName = ""
		}
	}
	return out
}

// requireSelf rejects a student reading another student's ledger. Other
// roles pass through.
func requireSelf(ident models.Identity, studentID int64) error {
	if len(ident.Roles) == 1 && ident.Roles[0] == models.Student && ident.UserID != studentID {
		return apperr.Access("students may view only their own evaluations")
	}
	return nil
}

func intParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "bad "+name)
	}
	return id, nil
}

func (s *Server) listEvaluations(c echo.Context) error {
	ident := identity(c)
	if !access.Can(ident.Roles, access.Evaluation, access.OpList) {
		return apperr.Access("not allowed to view evaluations")
	}
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	views, err := s.svc.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	views = evaluation.Filter(views, criteriaFromQuery(c))
	return c.JSON(http.StatusOK, scopeViews(ident, views))
}

func (s *Server) listByStudent(c echo.Context) error {
	ident := identity(c)
	studentID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := requireSelf(ident, studentID); err != nil {
		return err
	}
	views, err := s.svc.ListByStudent(c.Request().Context(), studentID)
	if err != nil {
		return err
	}
	views = evaluation.Filter(views, criteriaFromQuery(c))
	return c.JSON(http.StatusOK, scopeViews(ident, views))
}

func (s *Server) listByStudentClass(c echo.Context) error {
	ident := identity(c)
	studentID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	classID, err := intParam(c, "classID")
	if err != nil {
		return err
	}
	if err := requireSelf(ident, studentID); err != nil {
		return err
	}
	views, err := s.svc.ListByStudentClass(c.Request().Context(), studentID, classID)
	if err != nil {
		return err
	}
	views = evaluation.Filter(views, criteriaFromQuery(c))
	return c.JSON(http.StatusOK, scopeViews(ident, views))
}

func (s *Server) studentSummary(c echo.Context) error {
	studentID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := requireSelf(identity(c), studentID); err != nil {
		return err
	}
	sum, err := s.svc.Summary(c.Request().Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

func (s *Server) studentClassSummary(c echo.Context) error {
	studentID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	classID, err := intParam(c, "classID")
	if err != nil {
		return err
	}
	if err := requireSelf(identity(c), studentID); err != nil {
		return err
	}
	sum, err := s.svc.ClassSummary(c.Request().Context(), studentID, classID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

func (s *Server) createEvaluation(c echo.Context) error {
	var draft models.EvaluationDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request body")
	}
	created, err := s.svc.Create(c.Request().Context(), identity(c), draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

type quickCreateRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
	StudentID  int64  `json:"student_id"`
	ClassID    int64  `json:"class_id"`
}

func (s *Server) quickCreate(c echo.Context) error {
	var req quickCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	created, err := s.registry.QuickCreate(c.Request().Context(), s.svc, identity(c), req.TemplateID, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteEvaluation(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.svc.Delete(c.Request().Context(), identity(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) exportEvaluations(c echo.Context) error {
	ident := identity(c)
	if !access.Can(ident.Roles, access.Evaluation, access.OpList) {
		return apperr.Access("not allowed to view evaluations")
	}
	views, err := s.svc.List(c.Request().Context(), 0, 0)
	if err != nil {
		return err
	}
	file, err := export.EvaluationsExcel(scopeViews(ident, views))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="evaluations.xlsx"`)
	return c.Stream(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file)
}
