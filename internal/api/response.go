package api

import (
	"encoding/json"
	"fmt"

	"github.com/d1mk9/hwStatusBot/internal/models"
)

// CheckResponse проверяет ответ API и возвращает список домашних работ
func CheckResponse(response interface{}) ([]interface{}, error) {
	body, ok := response.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: ответ от API прислал не словарь, а %T", ErrTypeMismatch, response)
	}

	homeworks, ok := body[models.FieldHomeworks].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: поле %s не является списком (%T)", ErrTypeMismatch, models.FieldHomeworks, body[models.FieldHomeworks])
	}

	return homeworks, nil
}

// CurrentDate возвращает значение current_date из ответа API
func CurrentDate(response interface{}) (int64, bool) {
	body, ok := response.(map[string]interface{})
	if !ok {
		return 0, false
	}

	switch v := body[models.FieldCurrentDate].(type) {
	case json.Number:
		ts, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return ts, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
