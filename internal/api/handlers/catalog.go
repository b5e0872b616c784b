package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/catalog"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/form"
	"github.com/gin-gonic/gin"
)

type CountRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

type CatalogResponse struct {
	Brands       []catalog.Brand              `json:"brands"`
	Channels     []string                     `json:"channels"`
	LabelReasons []catalog.LabelReason        `json:"label_reasons"`
	Languages    []catalog.Language           `json:"languages"`
	Count        CountRange                   `json:"count"`
	Strings      map[string]catalog.UIStrings `json:"strings"`
}

// GetCatalog returns the static option lists and UI string tables
func GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		Brands:       catalog.Brands(),
		Channels:     catalog.Channels(),
		LabelReasons: catalog.LabelReasons(),
		Languages:    catalog.Languages(),
		Count: CountRange{
			Min:     form.MinCount,
			Max:     form.MaxCount,
			Default: form.DefaultCount,
		},
		Strings: catalog.Translations(),
	})
}
