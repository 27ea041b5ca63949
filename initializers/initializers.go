package initializers

import (
	"context"

	"scholarship-portal-backend/config"
	"scholarship-portal-backend/fiberlog"
	"scholarship-portal-backend/lib/application"
	applicationhistoryhandler "scholarship-portal-backend/lib/application-history"
	"scholarship-portal-backend/lib/call"
	xlsexport "scholarship-portal-backend/lib/export/xls"
	filestorage "scholarship-portal-backend/lib/file-storage"
	"scholarship-portal-backend/lib/invitation"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	applicationhistoryhandler.NewHandler()
	call.NewHandler()
	application.NewHandler()
	invitation.NewHandler()
	filestorage.NewHandler()
	xlsexport.NewHandler()
}
