package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jmehdipour/credit-insights/internal/chart"
	"github.com/jmehdipour/credit-insights/internal/chartpng"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/service/insights"
	echo "github.com/labstack/echo/v4"
)

const (
	minImageSide = 100
	maxImageSide = 4000
)

func listChartsHandler(svc *insights.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"charts": svc.Charts()})
	}
}

func chartHandler(svc *insights.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec, err := svc.ChartByName(c.Request().Context(), c.Param("kind"))
		if err != nil {
			return chartError(c, err)
		}
		return c.JSON(http.StatusOK, spec)
	}
}

func chartImageHandler(svc *insights.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, ok := model.ParseChartKind(c.Param("kind"))
		if !ok {
			return chartError(c, &chart.UnknownChartError{Kind: c.Param("kind")})
		}

		var opt chartpng.Options
		var err error
		if opt.Width, err = imageSide(c.QueryParam("width")); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid width"})
		}
		if opt.Height, err = imageSide(c.QueryParam("height")); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid height"})
		}

		png, err := svc.Image(c.Request().Context(), kind, opt)
		if err != nil {
			return chartError(c, err)
		}
		return c.Blob(http.StatusOK, "image/png", png)
	}
}

// imageSide parses an optional size; empty means "use the default" (0).
func imageSide(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minImageSide || n > maxImageSide {
		return 0, errors.New("out of range")
	}
	return n, nil
}

func chartError(c echo.Context, err error) error {
	var unknown *chart.UnknownChartError
	switch {
	case errors.As(err, &unknown):
		return c.JSON(http.StatusNotFound, map[string]string{"error": unknown.Error()})
	case errors.Is(err, chartpng.ErrEmptyChart):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		c.Logger().Errorf("chart failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}
}
