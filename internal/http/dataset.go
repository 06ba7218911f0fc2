package http

import (
	"net/http"
	"strconv"

	"github.com/jmehdipour/credit-insights/internal/service/insights"
	echo "github.com/labstack/echo/v4"
)

func previewHandler(svc *insights.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := insights.DefaultPreviewRows
		if v := c.QueryParam("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > insights.MaxPreviewRows {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			}
			limit = n
		}
		return c.JSON(http.StatusOK, svc.Preview(limit))
	}
}

func summaryHandler(svc *insights.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		t := svc.Table()
		return c.JSON(http.StatusOK, map[string]any{
			"source":   t.Source(),
			"records":  t.Len(),
			"loadedAt": t.LoadedAt(),
			"columns":  svc.Summary(),
		})
	}
}
