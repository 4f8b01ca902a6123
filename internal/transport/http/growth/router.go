package growthhttp

import (
	"errors"
	"net/http"

	"growthcalc/internal/calculator"
	"growthcalc/internal/growth"
	"growthcalc/internal/pkg/round"
	"growthcalc/internal/refdata"

	"github.com/gin-gonic/gin"
)

// Router 暴露生长测量打分相关接口。
type Router struct {
	medical         *calculator.Medical
	cdc             *calculator.CDC
	catalog         *refdata.Catalog
	defaultStandard growth.Standard
}

// NewRouter 构造 growth HTTP router。
func NewRouter(medical *calculator.Medical, cdc *calculator.CDC, catalog *refdata.Catalog, def growth.Standard) *Router {
	return &Router{medical: medical, cdc: cdc, catalog: catalog, defaultStandard: def}
}

// Register 将 /api/growth 路由挂载到给定分组下。
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/zscore", r.handleScore)
	group.POST("/percentile", r.handleScore)
	group.POST("/inverse", r.handleInverse)
	group.POST("/batch", r.handleBatch)
	group.GET("/standard", r.handleStandard)
	group.GET("/citations", r.handleCitations)
}

// resultPayload 是对外返回的打分结果（展示精度 2 位小数）。
type resultPayload struct {
	Metric     string  `json:"metric"`
	Sex        string  `json:"sex"`
	AgeMonths  float64 `json:"age_months"`
	Value      float64 `json:"value"`
	StatureCM  float64 `json:"stature_cm,omitempty"`
	ZScore     float64 `json:"z_score"`
	Percentile float64 `json:"percentile"`
	Standard   string  `json:"standard"`
	Band       string  `json:"band"`
}

func toPayload(res growth.Result) resultPayload {
	return resultPayload{
		Metric:     string(res.Metric),
		Sex:        res.Sex.String(),
		AgeMonths:  res.AgeMonths,
		Value:      res.Value,
		StatureCM:  res.StatureCM,
		ZScore:     round.Two(res.ZScore),
		Percentile: round.Two(res.Percentile),
		Standard:   string(res.Standard),
		Band:       string(res.Band()),
	}
}

// errorKind 将错误映射为稳定的机器可读标签。
func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, growth.ErrInvalidMeasurement):
		return "invalid_measurement", http.StatusUnprocessableEntity
	case errors.Is(err, growth.ErrInvalidPercentile):
		return "invalid_percentile", http.StatusUnprocessableEntity
	case errors.Is(err, growth.ErrOutOfRange):
		return "out_of_range", http.StatusUnprocessableEntity
	case errors.Is(err, growth.ErrUnsupportedAge):
		return "unsupported_age", http.StatusUnprocessableEntity
	case errors.Is(err, growth.ErrUnsupportedMetric):
		return "unsupported_metric", http.StatusUnprocessableEntity
	default:
		return "invalid_request", http.StatusBadRequest
	}
}

func writeError(c *gin.Context, err error) {
	kind, status := errorKind(err)
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
