package models

// HomeworkStatus статус проверки домашней работы
type HomeworkStatus string

const (
	StatusApproved  HomeworkStatus = "approved"
	StatusReviewing HomeworkStatus = "reviewing"
	StatusRejected  HomeworkStatus = "rejected"
)

// HomeworkVerdicts - текст вердикта для каждого известного статуса
var HomeworkVerdicts = map[HomeworkStatus]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Поля ответа API
const (
	FieldHomeworks    = "homeworks"
	FieldCurrentDate  = "current_date"
	FieldHomeworkName = "homework_name"
	FieldStatus       = "status"
)

// Homework structure for a single homework record from the API
type Homework struct {
	Name   string         `json:"homework_name"`
	Status HomeworkStatus `json:"status"`
}
