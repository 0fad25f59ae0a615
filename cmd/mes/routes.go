package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	masterdelete "mes-dashboard/http-server/masterdata/delete"
	masterget "mes-dashboard/http-server/masterdata/get"
	mastersave "mes-dashboard/http-server/masterdata/save"
	masterupdate "mes-dashboard/http-server/masterdata/update"
	meetingsdelete "mes-dashboard/http-server/meetings/delete"
	meetingsget "mes-dashboard/http-server/meetings/get"
	meetingssave "mes-dashboard/http-server/meetings/save"
	proddelete "mes-dashboard/http-server/production/delete"
	prodget "mes-dashboard/http-server/production/get"
	prodsave "mes-dashboard/http-server/production/save"
	reportexport "mes-dashboard/http-server/reports/export"
	reportget "mes-dashboard/http-server/reports/get"
	tasksdelete "mes-dashboard/http-server/tasks/delete"
	tasksget "mes-dashboard/http-server/tasks/get"
	taskssave "mes-dashboard/http-server/tasks/save"
	tasksupdate "mes-dashboard/http-server/tasks/update"
	"mes-dashboard/internal/config"
	"mes-dashboard/internal/middleware/auth"
	"mes-dashboard/internal/service/export"
	"mes-dashboard/internal/service/metrics"
	"mes-dashboard/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, reports *metrics.Service, exporter *export.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Production run logging
	router.Post("/api/production", prodsave.SaveProductionEntry(log, storage))
	router.Get("/api/production", prodget.GetProductionRecords(log, storage))
	router.Get("/api/production/{id}", prodget.GetProductionRecord(log, storage))
	router.Delete("/api/production/{id}", proddelete.DeleteProductionRecord(log, storage))

	// Master data: reads are open, mutations go through the admin gate below
	router.Get("/api/masterdata/{kind}", masterget.GetMasterData(log, storage))

	// Tasks
	router.Get("/api/tasks", tasksget.GetTasks(log, storage))
	router.Post("/api/tasks", taskssave.SaveTasks(log, storage))
	router.Put("/api/tasks/{id}", tasksupdate.UpdateTask(log, storage))
	router.Delete("/api/tasks/{id}", tasksdelete.DeleteTask(log, storage))

	// Meeting minutes
	router.Get("/api/meetings", meetingsget.GetMeetings(log, storage))
	router.Post("/api/meetings", meetingssave.SaveMeeting(log, storage))
	router.Delete("/api/meetings/{id}", meetingsdelete.DeleteMeeting(log, storage))

	// Reports
	router.Get("/api/reports", reportget.GetReport(log, reports, ""))
	router.Get("/api/reports/oee", reportget.GetReport(log, reports, "oee"))
	router.Get("/api/reports/downtime", reportget.GetReport(log, reports, "downtime"))
	router.Get("/api/reports/rejections", reportget.GetReport(log, reports, "rejections"))
	router.Get("/api/reports/trend", reportget.GetReport(log, reports, "trend"))
	router.Get("/api/reports/summary", reportget.GetReport(log, reports, "summary"))

	// Export
	router.Get("/api/report/excel", reportexport.ExportExcel(log, exporter))
	router.Get("/api/report/csv", reportexport.ExportCSV(log, exporter))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/masterdata/{kind}", mastersave.SaveMasterData(log, storage))
	adminRouter.Put("/masterdata/{kind}/{id}", masterupdate.UpdateMasterData(log, storage))
	adminRouter.Delete("/masterdata/{kind}/{id}", masterdelete.DeleteMasterData(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
