package assign_pending

// MaxBatchSize верхняя граница числа бронирований за один запуск
const MaxBatchSize = 1000

// Request модель запроса на массовое назначение
type Request struct {
	Limit   int    // Сколько бронирований обработать, 0 означает MaxBatchSize
	Trigger string // Источник запуска
}

// Response сводка по итогам запуска
type Response struct {
	Attempted  int `json:"attempted"`
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
	LostRace   int `json:"lostRace"`
	Failed     int `json:"failed"`
}
