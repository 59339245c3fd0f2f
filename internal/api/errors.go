package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport - запрос не дошёл до API или ответ не был получен
	ErrTransport = errors.New("ошибка при запросе к API")
	// ErrInvalidJSON - тело ответа не является JSON
	ErrInvalidJSON = errors.New("ответ API не является корректным JSON")
	// ErrTypeMismatch - структура ответа не совпадает с ожидаемой
	ErrTypeMismatch = errors.New("неожиданный тип данных в ответе API")
)

// BadStatusCodeError возвращается, когда API ответил кодом, отличным от 200
type BadStatusCodeError struct {
	StatusCode int
	Body       string
}

func (e *BadStatusCodeError) Error() string {
	return fmt.Sprintf("эндпоинт недоступен, код ответа: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
