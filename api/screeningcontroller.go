package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simscreen/similarity"
	"simscreen/types"
)

// RegisterScreeningRoutes registers submission screening endpoints.
func RegisterScreeningRoutes(r *gin.Engine, deps Dependencies) {
	g := r.Group("/api/screening")
	g.POST("/check", handleCheckSubmission(deps))
	g.POST("/compare", handleCompareSubmissions(deps))
	g.POST("/scan", handleScanCohort(deps))
	g.POST("/report", handleRenderReport)
}

// CheckSubmissionRequest represents the request to screen one submission
type CheckSubmissionRequest struct {
	Submission *types.Submission `json:"submission" binding:"required"`
}

// CheckSubmissionResponse carries the screening outcome plus the triple the
// caller persists onto its submission record.
type CheckSubmissionResponse struct {
	SubmissionID string                     `json:"submission_id,omitempty"`
	Result       similarity.ScreeningResult `json:"result"`
	Persist      similarity.PersistPayload  `json:"persist"`
}

// CompareSubmissionsRequest represents the request to compare two submissions
type CompareSubmissionsRequest struct {
	SubmissionA *types.Submission `json:"submission_a" binding:"required"`
	SubmissionB *types.Submission `json:"submission_b" binding:"required"`
}

// ScanCohortRequest represents the request to scan one assignment's cohort
type ScanCohortRequest struct {
	Submissions []*types.Submission `json:"submissions" binding:"required"`
}

// ScanCohortResponse carries the ranked flagged pairs.
type ScanCohortResponse struct {
	SubmissionCount int                             `json:"submission_count"`
	FlaggedPairs    int                             `json:"flagged_pairs"`
	Results         []similarity.PairwiseComparison `json:"results"`
	Partial         bool                            `json:"partial,omitempty"`
}

// RenderReportRequest carries a previously stored report blob.
type RenderReportRequest struct {
	Report string `json:"report"`
}

// RenderReportResponse is the parsed report, or available=false when the
// stored blob is malformed. A bad blob is never a request failure.
type RenderReportResponse struct {
	Available bool                        `json:"available"`
	Report    *similarity.ScreeningReport `json:"report,omitempty"`
}

func handleCheckSubmission(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckSubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := deps.Screener.Screen(c.Request.Context(), req.Submission.SubmissionContent)

		c.JSON(http.StatusOK, CheckSubmissionResponse{
			SubmissionID: req.Submission.ID,
			Result:       result,
			Persist:      result.PersistPayload(),
		})
	}
}

func handleCompareSubmissions(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompareSubmissionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, similarity.ComparePair(req.SubmissionA, req.SubmissionB))
	}
}

func handleScanCohort(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScanCohortRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		results, err := deps.Scanner.Scan(c.Request.Context(), req.Submissions)

		c.JSON(http.StatusOK, ScanCohortResponse{
			SubmissionCount: len(req.Submissions),
			FlaggedPairs:    len(results),
			Results:         results,
			Partial:         err != nil,
		})
	}
}

func handleRenderReport(c *gin.Context) {
	var req RenderReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := similarity.ParseReport(req.Report)
	if err != nil {
		// Degrade to "report unavailable"; a stored blob that no longer
		// parses must not surface as a failure.
		c.JSON(http.StatusOK, RenderReportResponse{Available: false})
		return
	}

	c.JSON(http.StatusOK, RenderReportResponse{Available: true, Report: report})
}
