package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	"github.com/yourusername/marathi-api/internal/handler/dto"
)

// CatalogHandler отдаёт справочные данные: модули и буквы
type CatalogHandler struct {
	catalog *alphabet.Catalog
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalog *alphabet.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListModules возвращает доступные модули
// GET /api/modules
func (h *CatalogHandler) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, entity.Modules())
}

// ListLetters возвращает буквы каталога
// GET /api/letters?max_difficulty=N
func (h *CatalogHandler) ListLetters(c *gin.Context) {
	letters := h.catalog.All()

	if raw := c.Query("max_difficulty"); raw != "" {
		maxDifficulty, err := strconv.Atoi(raw)
		if err != nil || maxDifficulty < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_difficulty must be a positive integer"})
			return
		}
		letters = h.catalog.UpToDifficulty(maxDifficulty)
	}

	out := make([]dto.LetterResponse, len(letters))
	for i, l := range letters {
		out[i] = dto.NewLetterResponse(l)
	}
	c.JSON(http.StatusOK, out)
}
