package handler

import "github.com/gin-gonic/gin"

// Handlers bundles every endpoint handler for route registration.
type Handlers struct {
	Patient      *PatientHandler
	Assessment   *AssessmentHandler
	Dashboard    *DashboardHandler
	ImportExport *ImportExportHandler
	Report       *ReportHandler
	Health       *HealthHandler
}

// RegisterRoutes attaches every endpoint to the router.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Health.Check)

	v1 := r.Group("/api/v1")

	patients := v1.Group("/patients")
	patients.GET("", h.Patient.List)
	patients.POST("", h.Patient.Create)
	patients.POST("/delete", h.Patient.DeleteBatch)
	patients.POST("/import", h.ImportExport.Import)
	patients.GET("/export/csv", h.ImportExport.ExportCSV)
	patients.GET("/export/backup", h.ImportExport.ExportBackup)
	patients.GET("/:id", h.Patient.Get)
	patients.PUT("/:id", h.Patient.Update)
	patients.DELETE("/:id", h.Patient.Delete)
	patients.POST("/:id/visits", h.Patient.AddVisit)
	patients.POST("/:id/assessments", h.Assessment.Record)
	patients.GET("/:id/report.pdf", h.Report.PatientReport)

	v1.GET("/reminders", h.Dashboard.Reminders)
	v1.GET("/dashboard/summary", h.Dashboard.Summary)
}
