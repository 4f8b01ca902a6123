package growthhttp

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"growthcalc/internal/growth"
	"growthcalc/internal/pkg/round"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 1 << 20

func (r *Router) handleScore(c *gin.Context) {
	raw, err := readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}
	meas, std, err := coerceMeasurement(raw, r.defaultStandard)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := r.medical.CalculateZScore(c.Request.Context(), meas, std)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(res))
}

func (r *Router) handleInverse(c *gin.Context) {
	raw, err := readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}
	req, err := coerceInverse(raw)
	if err != nil {
		writeError(c, err)
		return
	}
	value, err := r.cdc.InversePercentile(req.metric, req.sex, req.ageMonths, req.percentile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":     string(req.metric),
		"sex":        req.sex.String(),
		"age_months": req.ageMonths,
		"percentile": req.percentile,
		"standard":   string(growth.StandardCDC),
		"value":      round.Two(value),
	})
}

func (r *Router) handleBatch(c *gin.Context) {
	raw, err := readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := validateBatchPayload(raw); err != nil {
		writeError(c, err)
		return
	}
	items, std, err := coerceBatch(raw, r.defaultStandard)
	if err != nil {
		writeError(c, err)
		return
	}

	// Coercion failures stay in their slot so output order always matches
	// input order, same as engine-level failures.
	measurements := make([]growth.Measurement, 0, len(items))
	index := make([]int, 0, len(items))
	slots := make([]gin.H, len(items))
	for i, item := range items {
		if item.err != nil {
			kind, _ := errorKind(item.err)
			slots[i] = gin.H{"ok": false, "error": item.err.Error(), "kind": kind}
			continue
		}
		measurements = append(measurements, item.measurement)
		index = append(index, i)
	}
	results := r.medical.CalculateBatch(c.Request.Context(), measurements, std)
	for j, item := range results {
		i := index[j]
		if item.Err != nil {
			kind, _ := errorKind(item.Err)
			slots[i] = gin.H{"ok": false, "error": item.Err.Error(), "kind": kind}
			continue
		}
		slots[i] = gin.H{"ok": true, "result": toPayload(*item.Result)}
	}
	c.JSON(http.StatusOK, gin.H{"results": slots})
}

func (r *Router) handleStandard(c *gin.Context) {
	metric, err := growth.ParseMetric(c.Query("metric"))
	if err != nil {
		writeError(c, err)
		return
	}
	age, err := strconv.ParseFloat(strings.TrimSpace(c.Query("age_months")), 64)
	if err != nil {
		writeError(c, fmt.Errorf("age_months must be a number"))
		return
	}
	std, err := r.medical.ApplicableStandard(metric, age)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":     string(metric),
		"age_months": age,
		"standard":   string(std),
	})
}

func (r *Router) handleCitations(c *gin.Context) {
	if r.catalog == nil {
		c.JSON(http.StatusOK, gin.H{"citations": gin.H{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"citations": r.catalog.Citations()})
}

func readBody(c *gin.Context) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading request body: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", fmt.Errorf("request body is empty")
	}
	return string(raw), nil
}
