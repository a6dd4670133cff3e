package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/NextMind-AI/chat-sentiment/livechat"
	"github.com/NextMind-AI/chat-sentiment/processor"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const previewRows = 5

func (s *Server) indexHandler(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(indexHTML)
}

func (s *Server) healthCheckHandler(c fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

func (s *Server) createRunHandler(c fiber.Ctx) error {
	var body RunRequestBody
	if err := c.Bind().Body(&body); err != nil {
		log.Error().Err(err).Msg("Error parsing run request")
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON or a form")
	}

	ctx, release, ok := s.executions.TryStart(s.ctx, body.AccountID)
	if !ok {
		return errorJSON(c, fiber.StatusConflict, "RUN_IN_PROGRESS", "A report is already being generated for this account")
	}
	defer release()

	log.Info().
		Str("account_id", body.AccountID).
		Str("start_date", body.StartDate).
		Str("end_date", body.EndDate).
		Msg("Received report run request")

	result, err := s.reports.Generate(ctx, processor.RunRequest{
		AccountID: body.AccountID,
		Token:     body.Token,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		return runError(c, err)
	}

	rows := result.Report.Rows
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}

	return c.Status(fiber.StatusCreated).JSON(RunResponse{
		RunID:       result.ID,
		From:        result.Report.From,
		To:          result.Report.To,
		Counts:      result.Counts,
		Filename:    result.Filename,
		Location:    result.Location,
		DownloadURL: downloadURL(body.AccountID, result.ID),
		Preview:     rows,
	})
}

func downloadURL(accountID, runID string) string {
	return fmt.Sprintf("/api/runs/%s/report.csv?account_id=%s", url.PathEscape(runID), url.QueryEscape(accountID))
}

func (s *Server) downloadReportHandler(c fiber.Ctx) error {
	runID := c.Params("id")
	accountID := c.Query("account_id")
	if accountID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_PARAMETER", "account_id query parameter is required")
	}

	body, filename, err := s.reports.Download(c.Context(), accountID, runID)
	if errors.Is(err, processor.ErrRunNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "RUN_NOT_FOUND", "No report found for this run")
	}
	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("Error loading report")
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load report")
	}

	if filename == "" {
		filename = runID + ".csv"
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(filename)
	return c.Send(body)
}

func (s *Server) listRunsHandler(c fiber.Ctx) error {
	accountID := c.Query("account_id")
	if accountID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_PARAMETER", "account_id query parameter is required")
	}

	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	runs, err := s.reports.History(c.Context(), accountID, limit)
	if err != nil {
		log.Error().Err(err).Msg("Error listing runs")
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list runs")
	}

	return c.JSON(RunListResponse{Runs: runs})
}

// runError maps pipeline errors onto HTTP statuses.
func runError(c fiber.Ctx, err error) error {
	var fetchErr *livechat.FetchError

	switch {
	case errors.Is(err, livechat.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, livechat.ErrInvalidDateFormat):
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_DATE_FORMAT", err.Error())
	case errors.Is(err, livechat.ErrInvalidDateRange):
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_DATE_RANGE", err.Error())
	case errors.As(err, &fetchErr):
		return errorJSON(c, fiber.StatusBadGateway, "FETCH_FAILED",
			fmt.Sprintf("LiveChat API returned status %d: %s", fetchErr.Status, fetchErr.Body))
	case errors.Is(err, livechat.ErrTransport):
		return errorJSON(c, fiber.StatusGatewayTimeout, "TRANSPORT_ERROR", err.Error())
	case errors.Is(err, livechat.ErrPageLimit):
		return errorJSON(c, fiber.StatusBadGateway, "PAGE_LIMIT", err.Error())
	}

	log.Error().Err(err).Msg("Report run failed")
	return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Report generation failed")
}

func errorJSON(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
