package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/marathi-api/internal/domain/entity"
	"github.com/yourusername/marathi-api/internal/handler/dto"
	"github.com/yourusername/marathi-api/internal/service"
)

var reportHeaders = []string{"Модуль", "Буква", "Транслитерация", "Сложность", "Попыток", "Без ошибок подряд", "Ошибок", "Освоена", "Последняя активность"}

// ProgressHandler обрабатывает запросы статистики прогресса
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler создает новый обработчик прогресса
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress возвращает полный прогресс пользователя
// GET /api/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	progress, err := h.progressService.GetResolvedProgress(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProgressResponse(progress))
}

// GetDashboard возвращает сводку прогресса
// GET /api/progress/dashboard
func (h *ProgressHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.progressService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetCommonMistakes возвращает типичные ошибки пользователя
// GET /api/progress/mistakes
func (h *ProgressHandler) GetCommonMistakes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	patterns, err := h.progressService.CommonMistakes(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mistakes": patterns})
}

// ExportProgress экспортирует отчёт по буквам в CSV или Excel формате
// GET /api/progress/export?format=csv|xlsx
func (h *ProgressHandler) ExportProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	rows, err := h.progressService.ExportRows(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "ProgressHandler", err)
		return
	}

	filename := fmt.Sprintf("marathi_progress_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

// exportCSV экспортирует отчёт в CSV с правильным экранированием спецсимволов
func (h *ProgressHandler) exportCSV(c *gin.Context, rows []entity.ReportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(reportHeaders)

	for _, r := range rows {
		writer.Write([]string{
			string(r.Module),
			sanitizeForExcel(r.Letter),
			sanitizeForExcel(r.Latin),
			strconv.Itoa(r.Difficulty),
			strconv.Itoa(r.Attempts),
			strconv.Itoa(r.Flawless),
			strconv.Itoa(r.Mistakes),
			yesNo(r.Mastered),
			r.LastActivity.Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует отчёт в Excel через StreamWriter
func (h *ProgressHandler) exportXLSX(c *gin.Context, rows []entity.ReportRow, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Прогресс"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ProgressHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(reportHeaders))
	for i, name := range reportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ProgressHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		rowNum := i + 2 // 1 - заголовки
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			string(r.Module),
			sanitizeForExcel(r.Letter),
			sanitizeForExcel(r.Latin),
			r.Difficulty,
			r.Attempts,
			r.Flawless,
			r.Mistakes,
			yesNo(r.Mastered),
			r.LastActivity.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ProgressHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ProgressHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ProgressHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует значения, которые Excel примет за формулу
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}
