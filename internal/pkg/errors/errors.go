package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда действие требует активной сессии.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется, когда викторина не прошла валидацию
	// (пустой заголовок, ни одного вопроса с валидными вариантами).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput используется для пустых обязательных полей.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateUsername используется, когда имя пользователя уже занято.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials возвращается при любой ошибке входа.
	// Сообщение одинаково для несуществующего пользователя и неверного пароля.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedID используется, когда идентификатор викторины имеет неверный формат.
	ErrMalformedID = errors.New("malformed identifier")
)
