package router

import (
	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/container"
	pginfra "github.com/careloop/clinic-api/internal/infrastructure/postgres"
	handlers "github.com/careloop/clinic-api/internal/interface/http"
	"github.com/careloop/clinic-api/internal/router/modules"
)

// InitModules builds every service and handler from the container and
// registers the feature modules with the registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	patients := pginfra.NewPatientRepository(pool)
	doctors := pginfra.NewDoctorRepository(pool)
	appointments := pginfra.NewAppointmentRepository(pool)
	documents := pginfra.NewDocumentRepository(pool)

	patientSvc := application.NewPatientService(patients, logger, container.GetES(), cfg.ESPatientsIndex)
	authSvc := application.NewAuthService(users, patients, patientSvc, container.GetJWT(), container.GetRedis(), logger)
	doctorSvc := application.NewDoctorService(doctors, logger)
	apptSvc := application.NewAppointmentService(appointments, patients, doctors, container.GetRabbitPub(), logger)
	docSvc := application.NewDocumentService(documents, patients, container.GetGCS(), cfg.GCSBucket, container.GetRedis(), logger)
	queueSvc := application.NewQueueService(apptSvc, patients, container.GetRedis(), logger)

	authH := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	patientH := handlers.NewPatientHandler(patientSvc, logger)
	doctorH := handlers.NewDoctorHandler(doctorSvc, logger)
	apptH := handlers.NewAppointmentHandler(apptSvc, patientSvc, doctorSvc, logger)
	docH := handlers.NewDocumentHandler(docSvc, patientSvc, doctorSvc, logger)
	queueH := handlers.NewQueueHandler(queueSvc, patientSvc, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(authH, jwt))
	r.Add(modules.NewPatientModule(patientH, docH, jwt))
	r.Add(modules.NewDoctorModule(doctorH, jwt))
	r.Add(modules.NewAppointmentModule(apptH, jwt))
	r.Add(modules.NewDocumentModule(docH, jwt))
	r.Add(modules.NewQueueModule(queueH, jwt))
}
