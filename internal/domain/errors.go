package domain

import "errors"

// ErrProviderUnavailable - источник объектов карты недоступен (сеть, таймаут, разбор ответа)
var ErrProviderUnavailable = errors.New("map feature provider unavailable")
