package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/marathi-api/internal/domain/entity"
)

// ModuleKey: ключ контекста Gin с разобранным модулем
const ModuleKey = "module"

// ExtractModuleParam создает middleware для извлечения и валидации модуля из URL.
// paramName - имя параметра в URL (например, "module").
func ExtractModuleParam(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		module, err := entity.ParseModule(c.Param(paramName))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown module", "error_type": "invalid_module"})
			return
		}
		c.Set(ModuleKey, module)
		c.Next()
	}
}

// ModuleFromContext возвращает модуль, установленный ExtractModuleParam
func ModuleFromContext(c *gin.Context) (entity.Module, bool) {
	v, exists := c.Get(ModuleKey)
	if !exists {
		return "", false
	}
	module, ok := v.(entity.Module)
	return module, ok
}
