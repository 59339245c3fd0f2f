package utils

import (
	"errors"
	"fmt"

	"github.com/d1mk9/hwStatusBot/internal/models"
)

var (
	// ErrMissingField - в записи о домашней работе нет нужного ключа
	ErrMissingField = errors.New("в ответе нет запрашиваемого ключа")
	// ErrUnknownStatus - статус работы не входит в HomeworkVerdicts
	ErrUnknownStatus = errors.New("недокументированный статус домашней работы")
	// ErrInvalidField - ключ есть, но значение неожиданного типа
	ErrInvalidField = errors.New("некорректное значение поля в ответе")
)

// ExtractHomework извлекает название и статус работы из записи ответа API
func ExtractHomework(record interface{}) (models.Homework, error) {
	fields, ok := record.(map[string]interface{})
	if !ok {
		return models.Homework{}, fmt.Errorf("%w: запись о работе не является словарём (%T)", ErrMissingField, record)
	}

	rawName, ok := fields[models.FieldHomeworkName]
	if !ok {
		return models.Homework{}, fmt.Errorf("%w: %s", ErrMissingField, models.FieldHomeworkName)
	}
	name, ok := rawName.(string)
	if !ok {
		return models.Homework{}, fmt.Errorf("%w: поле %s не является строкой (%T)", ErrInvalidField, models.FieldHomeworkName, rawName)
	}

	rawStatus, ok := fields[models.FieldStatus]
	if !ok {
		return models.Homework{}, fmt.Errorf("%w: %s", ErrMissingField, models.FieldStatus)
	}
	status, ok := rawStatus.(string)
	if !ok {
		return models.Homework{}, fmt.Errorf("%w: %v", ErrUnknownStatus, rawStatus)
	}

	return models.Homework{Name: name, Status: models.HomeworkStatus(status)}, nil
}

// ParseStatus формирует текст уведомления об изменении статуса работы
func ParseStatus(record interface{}) (string, error) {
	homework, err := ExtractHomework(record)
	if err != nil {
		return "", err
	}

	verdict, ok := models.HomeworkVerdicts[homework.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, homework.Status)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", homework.Name, verdict), nil
}
