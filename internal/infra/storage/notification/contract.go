package notification

import "github.com/m04kA/SMC-PartnerAssignment/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor
