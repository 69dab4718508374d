package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

type stateResponse struct {
	Source string `json:"source"`
	top.View
}

type selectionRequest struct {
	Date string `json:"date" binding:"required"`
}

type refreshResponse struct {
	Started bool   `json:"started"`
	Phase   string `json:"phase"`
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, stateResponse{Source: s.dashboard.Source(), View: s.dashboard.View()})
}

func (s *Server) handleDates(c *gin.Context) {
	v := s.dashboard.View()
	dates := v.Dates
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates, "selectedDate": v.SelectedDate})
}

// resolveDate picks the ?date= query or the current selection
func (s *Server) resolveDate(c *gin.Context) (string, []model.DiveLog, bool) {
	v := s.dashboard.View()
	date := c.Query("date")
	if date == "" {
		return v.SelectedDate, v.Selected, true
	}
	if !model.ContainsDate(v.Dates, date) {
		errorJSON(c, http.StatusNotFound, "no dives logged on "+date)
		return "", nil, false
	}
	return date, model.FilterByDate(v.Records, date), true
}

func (s *Server) handleRecords(c *gin.Context) {
	date, logs, ok := s.resolveDate(c)
	if !ok {
		return
	}
	if logs == nil {
		logs = []model.DiveLog{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "count": len(logs), "records": logs})
}

func (s *Server) handleStats(c *gin.Context) {
	date, logs, ok := s.resolveDate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "stats": model.ComputeStats(logs)})
}

func (s *Server) handleSummary(c *gin.Context) {
	date, text, err := s.dashboard.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, top.ErrUnknownDate) {
			errorJSON(c, http.StatusNotFound, "no dives logged on "+c.Query("date"))
			return
		}
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "summary": text})
}

func (s *Server) handleSelect(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "request body must be {\"date\": \"...\"}")
		return
	}
	if err := s.dashboard.Select(req.Date); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, stateResponse{Source: s.dashboard.Source(), View: s.dashboard.View()})
}

func (s *Server) handleRefresh(c *gin.Context) {
	started := s.dashboard.RequestRefresh()
	status := http.StatusOK
	if started {
		status = http.StatusAccepted
	}
	c.JSON(status, refreshResponse{Started: started, Phase: s.dashboard.View().Phase.String()})
}

func (s *Server) handleRetry(c *gin.Context) {
	started := s.dashboard.Retry()
	status := http.StatusOK
	if started {
		status = http.StatusAccepted
	}
	c.JSON(status, refreshResponse{Started: started, Phase: s.dashboard.View().Phase.String()})
}
