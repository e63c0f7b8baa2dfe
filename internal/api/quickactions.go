package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/models"
)

// Quick actions prefill evaluation drafts, so their mutation surface follows
// the evaluation-create capability: teacher-only.
func requireTeacher(c echo.Context) error {
	if !identity(c).HasRole(models.Teacher) {
		return apperr.Access("quick actions are teacher-only")
	}
	return nil
}

func (s *Server) listQuickActions(c echo.Context) error {
	if err := requireTeacher(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.registry.List())
}

type quickActionRequest struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" validate:"required"`
	StudyPoint      int             `json:"study_point"`
	DisciplinePoint int             `json:"discipline_point"`
	Type            models.EvalType `json:"type" validate:"required"`
	Content         string          `json:"content"`
}

func (s *Server) addQuickAction(c echo.Context) error {
	if err := requireTeacher(c); err != nil {
		return err
	}
	var req quickActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	added, err := s.registry.Add(models.QuickActionTemplate{
		ID: req.ID, Name: req.Name, StudyPoint: req.StudyPoint,
		DisciplinePoint: req.DisciplinePoint, Type: req.Type, Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, added)
}

func (s *Server) editQuickAction(c echo.Context) error {
	if err := requireTeacher(c); err != nil {
		return err
	}
	var req quickActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t := models.QuickActionTemplate{
		ID: c.Param("id"), Name: req.Name, StudyPoint: req.StudyPoint,
		DisciplinePoint: req.DisciplinePoint, Type: req.Type, Content: req.Content,
	}
	if err := s.registry.Edit(t); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) removeQuickAction(c echo.Context) error {
	if err := requireTeacher(c); err != nil {
		return err
	}
	if err := s.registry.Remove(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) resetQuickActions(c echo.Context) error {
	if err := requireTeacher(c); err != nil {
		return err
	}
	s.registry.ResetToDefaults()
	return c.JSON(http.StatusOK, s.registry.List())
}
