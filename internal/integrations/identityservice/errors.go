package identityservice

import "errors"

var (
	// ErrUnauthenticated возвращается, когда токен не распознан сервисом идентификации
	ErrUnauthenticated = errors.New("identityservice client: unauthenticated")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")
)
