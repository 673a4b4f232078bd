package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/handler/dto"
)

func TestCatalogHandler_ListModules(t *testing.T) {
	h := NewCatalogHandler(alphabet.Marathi())
	c, w := newTestGinContext(http.MethodGet, "/api/modules", nil)

	h.ListModules(c)

	require.Equal(t, http.StatusOK, w.Code)
	var modules []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &modules))
	require.Len(t, modules, 2)
	assert.Equal(t, "marathi-to-latin", modules[0]["id"])
	assert.Equal(t, "latin-to-marathi", modules[1]["id"])
}

func TestCatalogHandler_ListLetters(t *testing.T) {
	catalog := alphabet.Marathi()
	h := NewCatalogHandler(catalog)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
	}{
		{name: "Все буквы", query: "", wantStatus: http.StatusOK, wantLen: catalog.Len()},
		{name: "Только лёгкие", query: "?max_difficulty=1", wantStatus: http.StatusOK, wantLen: len(catalog.UpToDifficulty(1))},
		{name: "Не число", query: "?max_difficulty=abc", wantStatus: http.StatusBadRequest},
		{name: "Ноль", query: "?max_difficulty=0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodGet, "/api/letters"+tt.query, nil)
			h.ListLetters(c)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var letters []dto.LetterResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &letters))
			assert.Len(t, letters, tt.wantLen)
		})
	}
}
